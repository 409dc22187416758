package main

import (
	"flag"
	"fmt"

	"gradefetch-backend/internal/components/chrono"
	"gradefetch-backend/internal/components/telemetry"
	"gradefetch-backend/internal/portal"
	"gradefetch-backend/internal/service"
	"gradefetch-backend/lib/configutil"
	"gradefetch-backend/lib/serviceutil"

	"connectrpc.com/connect"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	configPath := flag.String("config", "config.json5", "Path to the config file.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	shutdown := InitTelemetry(ctx, *verbose)
	defer shutdown()

	err := configutil.LoadEnv()
	if err != nil {
		serviceutil.Fatal("load .env", err)
	}
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	clock, err := chrono.NewStandardImpl()
	if err != nil {
		serviceutil.Fatal("load timezone", err)
	}

	tel := telemetry.SlogAPI{}
	navigator := portal.NewNavigator(
		portal.NewRodBrowser(cfg.Portal, tel),
		cfg.Portal,
		portal.WithCustomTelemetryAPI(tel),
	)
	svc := service.NewService(navigator, clock, service.WithCustomTelemetryAPI(tel))

	router := service.NewRouter(
		svc,
		portal.NewProber(cfg.Portal, tel),
		service.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			Environment:    cfg.Environment,
			Timeout:        timeout,
		},
		connect.WithInterceptors(serviceutil.NewConnectOtelInterceptor()),
	)

	err = serviceutil.ListenAndServe(ctx, fmt.Sprintf("0.0.0.0:%d", cfg.Port), router)
	if err != nil {
		serviceutil.Fatal("serve http", err)
	}
}
