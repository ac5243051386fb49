package main

import (
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/telekom/moodmail/pkg/api"
	"github.com/telekom/moodmail/pkg/audit"
	"github.com/telekom/moodmail/pkg/config"
	"github.com/telekom/moodmail/pkg/dispatch"
	"github.com/telekom/moodmail/pkg/mail"
	"github.com/telekom/moodmail/pkg/notification"
	"github.com/telekom/moodmail/pkg/storage"
	"github.com/telekom/moodmail/pkg/system"
	"github.com/telekom/moodmail/pkg/template"
)

func main() {
	var (
		debug      bool
		configPath string
	)
	flag.BoolVar(&debug, "debug", getEnvBool("MOODMAIL_DEBUG", false), "enable debug level logging")
	flag.StringVar(&configPath, "config", getEnvString("MOODMAIL_CONFIG_PATH", ""), "path to the config file")
	flag.Parse()

	zl := setupLogger(debug)
	log := zl.Sugar()
	log.With("version", system.Version).Info("Starting moodmail api")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading config for moodmail service: %v", err)
	}
	cfg.Defaults()

	if debug {
		log.Infof("%#v", cfg)
	}

	var source storage.Source
	if cfg.TemplateStore.Bucket != "" {
		s3, err := storage.NewS3Source(cfg.TemplateStore, log)
		if err != nil {
			log.Fatalf("Error creating template backing store: %v", err)
		}
		source = s3
		log.Infow("Template backing store enabled", "bucket", cfg.TemplateStore.Bucket, "region", cfg.TemplateStore.Region)
	} else {
		log.Infow("Template backing store not configured; serving compiled-in templates only")
	}

	store := template.NewStore(source, log)
	sender := mail.NewSender(cfg.Mail, log)

	recorder, err := audit.NewRecorder(cfg.Audit, zl)
	if err != nil {
		log.Fatalf("Error creating audit recorder: %v", err)
	}
	recorder.Record(audit.NewEvent(audit.EventSystemStartup))

	dispatcher := dispatch.NewDispatcher(store, sender, recorder, log)

	server := api.NewServer(zl, cfg, debug)
	err = server.RegisterAll([]api.APIController{
		notification.NewNotificationAPIController(log, dispatcher, store, recorder),
	})
	if err != nil {
		log.Fatalf("Error registering moodmail controllers: %v", err)
	}

	// Flush the audit trail before the process goes away.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		log.Infow("Shutting down", "signal", s.String())
		recorder.Record(audit.NewEvent(audit.EventSystemShutdown))
		if err := recorder.Close(); err != nil {
			log.Warnw("Closing audit recorder failed", "error", err)
		}
		os.Exit(0)
	}()

	if err := server.Listen(); err != nil {
		log.Fatalf("Error running moodmail api server: %v", err)
	}
}

func setupLogger(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	// Disable automatic stacktraces for non-fatal levels to avoid noisy traces in WARN/INFO logs
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339))
	}
	cfg.EncoderConfig.TimeKey = "ts"
	logger, err := cfg.Build()
	if err != nil {
		stdlog.Fatalf("failed to set up logger: %v", err)
	}
	return logger
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
