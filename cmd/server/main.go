package main

import (
	"fmt"
	"log"

	"github.com/estebancatanoe/IngenieriaWeb/internal/booking"
	"github.com/estebancatanoe/IngenieriaWeb/internal/config"
	"github.com/estebancatanoe/IngenieriaWeb/internal/database"
	"github.com/estebancatanoe/IngenieriaWeb/internal/server"
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

	r := server.NewRouter(cfg, engine)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
