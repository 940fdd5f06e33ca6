package mq

import (
	"encoding/json"
	"time"
)

// CommandType names a booking command carried over RabbitMQ.
type CommandType string

const (
	CommandCreateReservation    CommandType = "CreateReservation"
	CommandUpdateApproval       CommandType = "UpdateApproval"
	CommandListActiveDevices    CommandType = "ListActiveDevices"
	CommandListUserReservations CommandType = "ListUserReservations"
)

// CommandEnvelope is the generic command wrapper.
type CommandEnvelope struct {
	Type    CommandType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Request payloads. The username identifies the acting user; the engine
// checks role and standing, it does not authenticate.

type CreateReservationPayload struct {
	DeviceID uint      `json:"device_id"`
	Username string    `json:"username"`
	StartsAt time.Time `json:"starts_at"`
	Hours    int       `json:"hours"`
}

type UpdateApprovalPayload struct {
	ReservationID uint   `json:"reservation_id"`
	AdminUsername string `json:"admin_username"`
	Status        string `json:"status"`
}

type ListUserReservationsPayload struct {
	Username string `json:"username"`
}

// Response payloads.

type ReservationView struct {
	ID       uint      `json:"id"`
	DeviceID uint      `json:"device_id"`
	StartsAt time.Time `json:"starts_at"`
	Hours    int       `json:"hours"`
	Status   string    `json:"status"`
}

type DeviceView struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	DeviceType  string `json:"device_type"`
	Brand       string `json:"brand"`
	State       string `json:"state"`
}

type CreateReservationResponsePayload struct {
	Reservation ReservationView `json:"reservation"`
}

type UpdateApprovalResponsePayload struct {
	Reservation ReservationView `json:"reservation"`
}

type ListActiveDevicesResponsePayload struct {
	Devices []DeviceView `json:"devices"`
}

type ListUserReservationsResponsePayload struct {
	Reservations []ReservationView `json:"reservations"`
}

// Response is the generic response wrapper. Kind carries the rejection
// taxonomy so consumers never parse the error text.
type Response struct {
	OK      bool            `json:"ok"`
	Kind    string          `json:"kind,omitempty"`
	Error   string          `json:"error,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
