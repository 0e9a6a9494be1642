// Package gateway runs the realtime gateway: admin dashboards hold a
// websocket here and receive every snapshot published for their restaurant.
package gateway

import (
	"context"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"tableside/internal/common/httpx"
	"tableside/internal/common/logger"
	"tableside/internal/config"
	"tableside/internal/realtime"
)

func Run(ctx context.Context, cfg config.App, port int) error {
	lg := logger.New("realtime-gateway")

	hub := realtime.NewHub(lg.With("component", "hub"))
	go realtime.RunConsumer(ctx, cfg.Rabbit, hub, lg.With("component", "consumer"))

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/ws/{restaurantID}", realtime.WSHandler(hub, lg.With("component", "ws")))

	srv := httpx.New(":"+strconv.Itoa(port), r)
	lg.Info("service_started", "port", port)
	return srv.Run(ctx)
}
