package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	cfgpkg "github.com/local/ideagen/internal/config"
	"github.com/local/ideagen/internal/extract"
	"github.com/local/ideagen/internal/jobs"
	logpkg "github.com/local/ideagen/internal/logger"
	"github.com/local/ideagen/internal/metrics"
	"github.com/local/ideagen/internal/ocr"
	"github.com/local/ideagen/internal/statuscheck"
	"github.com/local/ideagen/internal/store"
	"github.com/local/ideagen/internal/web"
)

func main() {
	cfg := cfgpkg.FromEnv()

	_ = logpkg.Init(logpkg.Options{
		Level:        cfg.Logging.Level,
		Pretty:       cfg.Logging.Pretty,
		File:         cfg.Logging.File,
		MaxSizeMB:    cfg.Logging.MaxSizeMB,
		MaxBackups:   cfg.Logging.MaxBackups,
		MaxAgeDays:   cfg.Logging.MaxAgeDays,
		Compress:     cfg.Logging.Compress,
		SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
		AxiomAPIKey:  cfg.Axiom.APIKey,
		AxiomOrgID:   cfg.Axiom.OrgID,
		AxiomDataset: cfg.Axiom.Dataset,
		AxiomFlush:   cfg.Axiom.FlushInterval,
	})
	defer logpkg.Close()

	metrics.Init()

	// Stores: Redis when reachable, in-process otherwise. The generator works
	// either way; only persistence across restarts is lost.
	var (
		corpus  store.KV
		status  store.StatusStore
		checker *statuscheck.Checker
	)
	rs, err := store.NewRedis(cfg.Redis.URL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; falling back to in-memory stores")
		corpus = store.NewMemoryKV()
		status = store.NewMemoryStatus()
	} else {
		defer rs.Close()
		corpus = rs
		status = rs
		checker = statuscheck.New(statuscheck.Options{
			Redis:        redisPinger{rs},
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		})
	}

	var engine jobs.OCREngine
	if cfg.OCR.Enabled {
		var client ocr.Client
		switch cfg.OCR.Provider {
		case "anthropic":
			client = ocr.NewAnthropicClient()
		default:
			client = ocr.NewOpenAIClient()
		}
		engine = ocr.NewEngine(ocr.Options{
			Client:      client,
			Model:       cfg.OCR.Model,
			DPI:         cfg.OCR.DPI,
			JPEGQuality: cfg.OCR.JPEGQuality,
			PageTimeout: cfg.OCR.PageTimeout,
		})
		log.Info().Str("provider", cfg.OCR.Provider).Str("model", cfg.OCR.Model).Msg("OCR fallback enabled")
	} else {
		log.Info().Msg("OCR fallback disabled; scanned PDFs will be rejected")
	}

	runner := jobs.New(jobs.Dependencies{
		Extractor: extract.NewExtractor(),
		OCR:       engine,
		Status:    status,
		Corpus:    corpus,
		OCRLang:   cfg.OCR.DefaultLang,
	})

	mux := http.NewServeMux()
	srv := web.New(web.Options{
		Corpus:      corpus,
		Status:      status,
		Runner:      runner,
		Checker:     checker,
		Generator:   cfg.Generator,
		MaxUploadMB: cfg.Server.MaxUploadMB,
	})
	srv.RegisterRoutes(mux)
	mux.Handle("/metrics", metrics.Handler())

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	log.Info().Msg("shutdown complete")
}

// redisPinger adapts the store client to the status checker interface.
type redisPinger struct{ rs *store.RedisStore }

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rs.Client().Ping(ctx).Err()
}
