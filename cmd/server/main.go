package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"smartbill/internal/config"
	"smartbill/internal/repo"
	"smartbill/internal/server"
	"smartbill/internal/services"
	"smartbill/internal/store"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := store.Close(db); err != nil {
			log.Printf("error closing store: %v", err)
		}
	}()
	if *migrateOnlyFlag {
		log.Println("migrations completed; exiting as requested")
		return
	}
	log.Printf("Starting server env=%s port=%s db=%s", cfg.Env, cfg.Port, cfg.DatabasePath)

	notifier := services.LogNotifier{}
	var scheduler *cron.Cron
	if cfg.SummaryEnabled {
		scheduler = cron.New()
		job := &services.SummaryJob{
			Reports:  services.NewReportService(db),
			Settings: repo.NewSettingRepo(db),
			Notifier: notifier,
		}
		if _, err := scheduler.AddJob(cfg.SummaryCron, job); err != nil {
			log.Fatalf("invalid SALES_SUMMARY_CRON %q: %v", cfg.SummaryCron, err)
		}
		scheduler.Start()
		log.Printf("daily sales summary scheduled: %s", cfg.SummaryCron)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(db, notifier)}
	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
