package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"crm-timeline/internal/adapters/auth/hermes"
	"crm-timeline/internal/platform/logger"
	"crm-timeline/internal/ports/auth"
	"crm-timeline/internal/router"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	appLog := logger.NewFromEnv()

	// Verifier solo si Hermes está configurado; sin él, modo dev
	// (X-Debug-User-ID / X-Debug-Workspace-ID).
	var verifier auth.AuthVerifier
	if baseURL := os.Getenv("HERMES_BASE_URL"); baseURL != "" {
		client, err := hermes.NewClient(hermes.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("HERMES_API_KEY"),
		})
		if err != nil {
			log.Fatalf("hermes client: %v", err)
		}
		verifier = hermes.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Logger:       appLog,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info("starting server", logger.Fields{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
