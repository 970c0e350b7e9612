package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"academic-scheduler/internal/adapters/auth/campus"
	"academic-scheduler/internal/platform/logger"
	"academic-scheduler/internal/ports/auth"
	"academic-scheduler/internal/router"
)

// @title Academic Scheduler API
// @version 1.0
// @description Planificación de eventos académicos con detección de conflictos y workflow de aprobación.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	var verifier auth.AuthVerifier
	if cfg := campus.ConfigFromEnv(); cfg.BaseURL != "" {
		client, err := campus.NewClient(cfg)
		if err != nil {
			log.Error("campus sso config", map[string]any{"err": err})
			os.Exit(1)
		}
		verifier = campus.NewVerifier(client)
		log.Info("campus sso verifier enabled", map[string]any{"url": cfg.BaseURL})
	} else {
		log.Warn("no campus sso configured, running in dev auth mode", nil)
	}

	r := router.NewRouter(router.Options{AuthVerifier: verifier})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}
