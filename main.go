package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"userreports/internal/database"
	"userreports/internal/handler"
	"userreports/internal/repository"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func run() error {
	dbURL := os.Getenv("REPORTS_DB_URL")
	if dbURL == "" {
		return fmt.Errorf("REPORTS_DB_URL environment variable is required")
	}

	port := os.Getenv("REPORTS_PORT")
	if port == "" {
		port = "8080"
	}

	db, err := database.Open(dbURL)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}
	defer sqlDB.Close()
	log.Println("Successfully connected to database")

	if err := database.Migrate(db); err != nil {
		return err
	}
	if err := database.Seed(db); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)

	mux := http.NewServeMux()
	handler.NewUserHandler(userRepo).Register(mux)
	handler.NewReportHandler(reportRepo).Register(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	addr := fmt.Sprintf(":%s", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.WithRequestID(handler.WithLogging(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("User reports service listening on %s", addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
