// Command accesslogd is a small demo host for the access-log middleware.
// Every route it serves produces one structured record on stdout; /boom
// panics on purpose so the fault path shows up in the logs too.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/slogware/accesslog"
	"github.com/slogware/accesslog/internal/config"
	"github.com/slogware/accesslog/internal/logging"
	"github.com/slogware/accesslog/internal/ops"
	"github.com/slogware/accesslog/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(os.Stdout, cfg.Log.Format, level)
	if err != nil {
		log.Fatal(err)
	}
	logger = logger.With(logging.Attrs(cfg.Log.Fields)...)

	access := accesslog.New(logger.With("log_type", "access")).
		Exclude(cfg.Log.Exclude...)

	reg := prometheus.NewRegistry()
	metrics := ops.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello world\n"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	mux.Handle("/metrics", ops.Handler(reg))

	handler := accesslog.Chain(
		accesslog.RequestID(),
		access.Middleware,
		metrics.Middleware(),
	)(mux)

	srv := server.New(server.Config{
		Addr:    cfg.Addr,
		Handler: handler,
		Logger:  logger,
	})
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
