package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/laundromat-id/adminctl/internal/pkg/telemetry"
	"github.com/laundromat-id/adminctl/internal/stub"
)

// laundromat-stub serves the remote API's surface from memory so the
// client can be developed and demoed without the hosted server. Seeded
// accounts: admin@laundromat.id/admin123, kasir@laundromat.id/kasir123.
func main() {
	addr := getEnv("STUB_ADDR", ":4000")
	telemetry.InitLogger(os.Stdout, slog.LevelInfo)

	store := stub.NewStore()
	handler := stub.NewHandler(store)
	router := stub.NewRouter(handler)

	slog.Info("laundromat stub running", "addr", addr, "api", "/api/v1")
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
