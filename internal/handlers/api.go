package handlers

import "github.com/estebancatanoe/IngenieriaWeb/internal/booking"

// API groups the handlers that delegate to the admission engine.
type API struct {
	Engine *booking.Engine
}

func NewAPI(engine *booking.Engine) *API {
	return &API{Engine: engine}
}
