package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	authservice "driver-auth/internal/auth-service"
	"driver-auth/internal/config"
	"driver-auth/internal/mylogger"
)

func main() {
	authCmd := flag.NewFlagSet("auth-service", flag.ExitOnError)
	port := authCmd.String("port", "", "listen port, overrides AUTH_SERVICE_PORT")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: app auth-service [-port N]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "auth-service":
		if err := authCmd.Parse(os.Args[2:]); err != nil {
			os.Exit(2)
		}
		cfg, err := config.New()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if *port != "" {
			if err := cfg.OverridePort(*port); err != nil {
				log.Fatalf("Invalid -port: %v", err)
			}
		}

		mylog, err := mylogger.New(cfg.Log.Level)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		for _, key := range cfg.Defaulted {
			mylog.Warn("using default key", "key", key)
		}

		mylog.Action("auth_service_started").Info("Auth service starting up")
		if err := authservice.Execute(context.Background(), mylog, cfg); err != nil {
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(1)
	}
}
