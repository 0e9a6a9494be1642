package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tableside/internal/app/api"
	"tableside/internal/app/gateway"
	"tableside/internal/common/logger"
	"tableside/internal/config"
)

func main() {
	mode := flag.String("mode", "", "api-server | realtime-gateway")
	port := flag.Int("port", 0, "override the configured port for the selected mode")
	cfgPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	lg := logger.New("bootstrap")

	path := *cfgPath
	if path == "" {
		var err error
		path, err = config.FindConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "no config found; pass -config")
			os.Exit(2)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, "path", path)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "api-server":
		if *port == 0 {
			*port = cfg.HTTP.APIPort
		}
		lg.Info("service_starting", "service", "api-server", "port", *port)
		if err := api.Run(ctx, cfg, *port); err != nil {
			lg.Error("fatal", err)
			os.Exit(1)
		}
	case "realtime-gateway":
		if *port == 0 {
			*port = cfg.HTTP.GatewayPort
		}
		lg.Info("service_starting", "service", "realtime-gateway", "port", *port)
		if err := gateway.Run(ctx, cfg, *port); err != nil {
			lg.Error("fatal", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "-mode is required: api-server | realtime-gateway")
		os.Exit(2)
	}
}
