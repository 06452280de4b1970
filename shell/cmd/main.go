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

	"github.com/gin-gonic/gin"

	"weatherwise-shell/shared/config"
	"weatherwise-shell/shared/monitoring"
	"weatherwise-shell/shared/scheduler"
	"weatherwise-shell/shell"
)

func main() {
	check := flag.Bool("check", false, "Probe the backend once and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	monitor := monitoring.NewMonitor()
	backend := shell.NewBackendClient(&cfg.Backend, monitor)
	commands := shell.NewCommands(backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	probe := scheduler.ProbeFunc("backend health", func(ctx context.Context) error {
		_, err := commands.CheckBackendHealth(ctx)
		return err
	})

	if *check {
		poller := scheduler.New(&cfg.HealthPoll, probe)
		if err := poller.RunOnce(ctx); err != nil {
			log.Fatalf("Backend check failed: %v", err)
		}
		log.Printf("✅ %s", shell.BackendRunning)
		return
	}

	log.Printf("Starting WeatherWise shell (backend %s)", cfg.Backend.URL)

	gin.SetMode(gin.ReleaseMode)
	bridge := shell.NewBridge(&cfg.Bridge, commands, monitor)

	srv := &http.Server{
		Addr:    cfg.Bridge.Addr(),
		Handler: bridge.Router(),
	}

	go func() {
		log.Printf("Bridge listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Bridge server failed: %v", err)
		}
	}()

	if !cfg.HealthPoll.Disabled {
		poller := scheduler.New(&cfg.HealthPoll, probe)
		go func() {
			if err := poller.Start(ctx); err != nil && err != context.Canceled {
				log.Printf("⚠️  Poller exited: %v", err)
			}
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Bridge shutdown: %v", err)
	}
	log.Println("Bridge stopped")
}
