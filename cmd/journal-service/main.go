package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"ticket-journal/internal/config"
	"ticket-journal/internal/friends"
	"ticket-journal/internal/logger"
	"ticket-journal/internal/profile"
	"ticket-journal/internal/tickets"
	"ticket-journal/internal/tickets/ticket_api"
)

func main() {
	_ = godotenv.Load() // loads .env if present

	cfg := config.Load()

	log, err := logger.New(cfg.Log.Dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Close()

	store := tickets.NewStore(cfg.Session.UserID)
	friendStore := friends.NewStore()
	profileStore := profile.NewStore(cfg.Session.Nickname)
	handler := ticket_api.NewHandler(store, friendStore, profileStore, log)

	r := chi.NewRouter()
	r.Use(requestLogger(log))
	r.Mount("/", handler.Routes())

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "journal service on "+cfg.Server.Port+" for user "+cfg.Session.UserID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("SERVER", "http error: "+err.Error())
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
	log.Info("SERVER", "journal service shutdown complete")
}

// requestLogger logs every handled request with its status and latency.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			log.LogAPI(r.Method, r.URL.Path, recorder.status, time.Since(start))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
