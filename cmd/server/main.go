package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"judgement/internal/history"
	"judgement/internal/server"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using system variables")
	}

	addr := ":8080"
	if v := os.Getenv("ADDR"); v != "" {
		addr = v
	}

	ctx := context.Background()

	var sink history.Sink = history.Noop{}
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		pg, err := history.NewPostgres(ctx, dsn)
		if err != nil {
			log.WithError(err).Fatal("cannot connect to postgres")
		}
		defer pg.Close()
		sink = pg
		log.Info("recording history to postgres")
	}

	outbox := history.NewOutbox(sink, log)
	outbox.Start(ctx)
	defer outbox.Close()

	store := server.NewMemoryStore()
	manager := server.NewManager(store, outbox, log)

	mux := http.NewServeMux()
	mux.Handle("/ws", server.NewHandler(manager, log))
	mux.HandleFunc("/games", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(store.List())
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
