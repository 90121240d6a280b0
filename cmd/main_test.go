package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/Dosada05/retrogaming-api/config"
	"github.com/Dosada05/retrogaming-api/db"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServeStopsOnContextCancel(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- serve(ctx, server, discardLogger()) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve() error = %v, want nil", err)
		}
	case <-time.After(shutdownTimeout):
		t.Fatal("serve() did not return after cancel")
	}
}

func TestServeReturnsListenError(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()}
	if err := serve(context.Background(), server, discardLogger()); err == nil {
		t.Fatal("serve() error = nil for an invalid address")
	}
}

func TestPrepareStore(t *testing.T) {
	conn, err := db.Connect(db.DriverSQLite, ":memory:", time.Second)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer conn.Close()

	cfg := &config.Config{AppEnv: config.EnvDevelopment, DatabaseDriver: db.DriverSQLite, DBConnectTimeout: time.Second}
	if err := prepareStore(context.Background(), cfg, conn, discardLogger()); err != nil {
		t.Fatalf("prepareStore() error = %v", err)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM scores`).Scan(&count); err != nil {
		t.Fatalf("count scores: %v", err)
	}
	if count != len(db.SampleScores) {
		t.Errorf("scores = %d, want %d", count, len(db.SampleScores))
	}
}
