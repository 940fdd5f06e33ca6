package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/estebancatanoe/IngenieriaWeb/internal/booking"
	"github.com/estebancatanoe/IngenieriaWeb/internal/config"
	"github.com/estebancatanoe/IngenieriaWeb/internal/database"
	"github.com/estebancatanoe/IngenieriaWeb/internal/models"
	"github.com/estebancatanoe/IngenieriaWeb/internal/mq"
	"github.com/estebancatanoe/IngenieriaWeb/internal/storage"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN)

	engine := booking.NewEngine(
		storage.NewDeviceStore(database.DB),
		storage.NewUserStore(database.DB),
		storage.NewReservationStore(database.DB),
		storage.NewLoanStore(database.DB),
		booking.RealClock{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		cfg.BookingQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(
		cfg.BookingQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatalf("failed to register consumer: %v", err)
	}

	log.Printf("mq worker listening on queue %s", cfg.BookingQueue)

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		for d := range msgs {
			handleDelivery(ctx, &d, ch, engine)
		}
	}()

	<-stopCh
	log.Println("shutting down mq-worker...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	log.Println("mq-worker stopped")
}

func handleDelivery(parentCtx context.Context, d *amqp.Delivery, ch *amqp.Channel, engine *booking.Engine) {
	defer func() {
		// always ack so the broker never redelivers forever
		if err := d.Ack(false); err != nil {
			log.Printf("failed to ack message: %v", err)
		}
	}()

	var env mq.CommandEnvelope
	if err := json.Unmarshal(d.Body, &env); err != nil {
		log.Printf("invalid command envelope: %v", err)
		sendErrorResponse(parentCtx, ch, d, "invalid command format: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(parentCtx, 5*time.Second)
	defer cancel()

	switch env.Type {
	case mq.CommandCreateReservation:
		handleCreateReservation(ctx, env.Payload, ch, d, engine)
	case mq.CommandUpdateApproval:
		handleUpdateApproval(ctx, env.Payload, ch, d, engine)
	case mq.CommandListActiveDevices:
		handleListActiveDevices(ctx, ch, d, engine)
	case mq.CommandListUserReservations:
		handleListUserReservations(ctx, env.Payload, ch, d, engine)
	default:
		log.Printf("unknown command type: %s", env.Type)
		sendErrorResponse(ctx, ch, d, "unknown command type: "+string(env.Type))
	}
}

func sendResponse(ctx context.Context, ch *amqp.Channel, d *amqp.Delivery, resp mq.Response) {
	if d.ReplyTo == "" {
		// fire-and-forget
		return
	}
	body, err := json.Marshal(resp)
	if err != nil {
		log.Printf("failed to marshal response: %v", err)
		return
	}

	err = ch.PublishWithContext(
		ctx,
		"",
		d.ReplyTo,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: d.CorrelationId,
			Body:          body,
		},
	)
	if err != nil {
		log.Printf("failed to publish response: %v", err)
	}
}

// sendEngineError forwards a rejection with its kind; storage errors are
// logged and reported as a bare internal error.
func sendEngineError(ctx context.Context, ch *amqp.Channel, d *amqp.Delivery, err error) {
	if kind, ok := booking.KindOf(err); ok {
		sendResponse(ctx, ch, d, mq.Response{
			OK:    false,
			Kind:  string(kind),
			Error: err.Error(),
			Type:  "Error",
		})
		return
	}
	log.Printf("storage error: %v", err)
	sendResponse(ctx, ch, d, mq.Response{
		OK:    false,
		Error: "internal error",
		Type:  "Error",
	})
}

func sendErrorResponse(ctx context.Context, ch *amqp.Channel, d *amqp.Delivery, message string) {
	sendResponse(ctx, ch, d, mq.Response{
		OK:    false,
		Error: message,
		Type:  "Error",
	})
}

func reservationView(r *models.Reservation) mq.ReservationView {
	return mq.ReservationView{
		ID:       r.ID,
		DeviceID: r.DeviceID,
		StartsAt: r.StartsAt,
		Hours:    r.Hours,
		Status:   string(r.Status),
	}
}

func handleCreateReservation(ctx context.Context, payload json.RawMessage, ch *amqp.Channel, d *amqp.Delivery, engine *booking.Engine) {
	var req mq.CreateReservationPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		sendErrorResponse(ctx, ch, d, "invalid payload: "+err.Error())
		return
	}

	reservation, err := engine.CreateReservation(ctx, req.DeviceID, req.Username, req.StartsAt, req.Hours)
	if err != nil {
		sendEngineError(ctx, ch, d, err)
		return
	}

	respPayload := mq.CreateReservationResponsePayload{Reservation: reservationView(reservation)}
	payloadBytes, _ := json.Marshal(respPayload)

	sendResponse(ctx, ch, d, mq.Response{
		OK:      true,
		Type:    "CreateReservationResponse",
		Payload: payloadBytes,
	})
}

func handleUpdateApproval(ctx context.Context, payload json.RawMessage, ch *amqp.Channel, d *amqp.Delivery, engine *booking.Engine) {
	var req mq.UpdateApprovalPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		sendErrorResponse(ctx, ch, d, "invalid payload: "+err.Error())
		return
	}

	reservation, err := engine.UpdateApprovalStatus(ctx, req.ReservationID, req.AdminUsername, models.ApprovalStatus(req.Status))
	if err != nil {
		sendEngineError(ctx, ch, d, err)
		return
	}

	respPayload := mq.UpdateApprovalResponsePayload{Reservation: reservationView(reservation)}
	payloadBytes, _ := json.Marshal(respPayload)

	sendResponse(ctx, ch, d, mq.Response{
		OK:      true,
		Type:    "UpdateApprovalResponse",
		Payload: payloadBytes,
	})
}

func handleListActiveDevices(ctx context.Context, ch *amqp.Channel, d *amqp.Delivery, engine *booking.Engine) {
	devices, err := engine.ListActiveDevices(ctx)
	if err != nil {
		sendEngineError(ctx, ch, d, err)
		return
	}

	views := make([]mq.DeviceView, 0, len(devices))
	for i := range devices {
		views = append(views, mq.DeviceView{
			ID:          devices[i].ID,
			Description: devices[i].Description,
			DeviceType:  devices[i].DeviceType,
			Brand:       devices[i].Brand,
			State:       string(devices[i].State),
		})
	}

	respPayload := mq.ListActiveDevicesResponsePayload{Devices: views}
	payloadBytes, _ := json.Marshal(respPayload)

	sendResponse(ctx, ch, d, mq.Response{
		OK:      true,
		Type:    "ListActiveDevicesResponse",
		Payload: payloadBytes,
	})
}

func handleListUserReservations(ctx context.Context, payload json.RawMessage, ch *amqp.Channel, d *amqp.Delivery, engine *booking.Engine) {
	var req mq.ListUserReservationsPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		sendErrorResponse(ctx, ch, d, "invalid payload: "+err.Error())
		return
	}

	reservations, err := engine.ListUserReservations(ctx, req.Username)
	if err != nil {
		sendEngineError(ctx, ch, d, err)
		return
	}

	views := make([]mq.ReservationView, 0, len(reservations))
	for i := range reservations {
		views = append(views, reservationView(&reservations[i]))
	}

	respPayload := mq.ListUserReservationsResponsePayload{Reservations: views}
	payloadBytes, _ := json.Marshal(respPayload)

	sendResponse(ctx, ch, d, mq.Response{
		OK:      true,
		Type:    "ListUserReservationsResponse",
		Payload: payloadBytes,
	})
}
