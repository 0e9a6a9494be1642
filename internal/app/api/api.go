// Package api wires and runs the HTTP API server: order intake, status
// transitions, menu and profile CRUD, auth and the sales dashboard.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"tableside/internal/auth"
	"tableside/internal/cache"
	"tableside/internal/common/httpx"
	"tableside/internal/common/logger"
	"tableside/internal/config"
	"tableside/internal/connections/database"
	"tableside/internal/connections/rabbitmq"
	"tableside/internal/dashboard"
	"tableside/internal/details"
	"tableside/internal/menu"
	"tableside/internal/notifier"
	orderhandlers "tableside/internal/order/handlers"
	"tableside/internal/order/repository"
	orderservice "tableside/internal/order/service"
)

func Run(ctx context.Context, cfg config.App, port int) error {
	lg := logger.New("api-server")

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	lg.Info("db_connected", "host", cfg.Database.Host, "database", cfg.Database.Name)

	rmq, err := rabbitmq.Dial(cfg.Rabbit)
	if err != nil {
		return err
	}
	defer rmq.Close()
	if err := rmq.DeclareTopology(); err != nil {
		return err
	}
	lg.Info("rabbitmq_connected", "host", cfg.Rabbit.Host)

	redis := cache.NewRedisCache(cfg.Redis.Addr(), "tableside")

	ordersRepo := repository.NewOrdersPG(pool)
	ordersSvc := orderservice.New(ordersRepo, notifier.NewAMQP(rmq), lg.With("component", "order-service"))
	orderH := orderhandlers.NewOrderHandler(ordersSvc)

	menuH := menu.NewHandler(menu.NewService(menu.NewMenuPG(pool)))

	detailsRepo := details.NewDetailsPG(pool)
	detailsH := details.NewHandler(details.NewService(detailsRepo))

	authSvc := auth.NewService(detailsRepo, redis)
	authH := auth.NewHandler(authSvc)

	dashH := dashboard.NewHandler(dashboard.NewService(ordersSvc, redis, lg.With("component", "dashboard")))

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(lg))

	// Diner-facing: reachable from a scanned table link, no session.
	r.Post("/api/restaurants/{restaurantID}/orders", orderH.Create)
	r.Post("/api/restaurants/{restaurantID}/staff-calls", orderH.CallStaff)
	r.Get("/api/restaurants/{restaurantID}/menu", menuH.List)
	r.Get("/api/restaurants/{restaurantID}/details", detailsH.Get)
	r.Post("/api/login", authH.Login)

	// Admin-facing: requires a session issued by login.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))
		pr.Get("/api/restaurants/{restaurantID}/orders", orderH.List)
		pr.Patch("/api/orders/{orderID}", orderH.Transition)
		pr.Post("/api/restaurants/{restaurantID}/menu", menuH.Add)
		pr.Patch("/api/restaurants/{restaurantID}/menu/{itemID}", menuH.Update)
		pr.Delete("/api/restaurants/{restaurantID}/menu/{itemID}", menuH.Delete)
		pr.Post("/api/restaurants", detailsH.Create)
		pr.Patch("/api/restaurants/{restaurantID}/details", detailsH.Update)
		pr.Get("/api/restaurants/{restaurantID}/dashboard", dashH.Earnings)
		pr.Post("/api/logout", authH.Logout)
	})

	srv := httpx.New(":"+strconv.Itoa(port), r)
	lg.Info("service_started", "port", port)
	return srv.Run(ctx)
}

func requestLogger(lg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			lg.Debug("http_request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds())
		})
	}
}
