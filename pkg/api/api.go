package api

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/telekom/moodmail/pkg/apiresponses"
	"github.com/telekom/moodmail/pkg/config"
	"github.com/telekom/moodmail/pkg/metrics"
	"github.com/telekom/moodmail/pkg/system"
)

type APIController interface {
	BasePath() string
	Register(rg *gin.RouterGroup) error
	Handlers() []gin.HandlerFunc
}

type Server struct {
	gin    *gin.Engine
	config config.Config
	log    *zap.Logger
}

func NewServer(log *zap.Logger, cfg config.Config, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(log, time.RFC3339, true),
		ginzap.RecoveryWithZap(log, true),
		requestLogger(log),
	)

	if len(cfg.Server.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			log.Sugar().Warnw("Invalid trusted proxy configuration", "error", err)
		}
	}

	if debug {
		engine.Use(
			cors.New(cors.Config{
				AllowOrigins: []string{"http://localhost:5173", "127.0.0.1:8080"},
				AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
				AllowHeaders: []string{"Origin", "Authorization", "Content-Type"},
				MaxAge:       12 * time.Hour,
			}),
		)
	}

	s := &Server{
		gin:    engine,
		config: cfg,
		log:    log,
	}

	engine.GET("api/healthz", s.healthz)
	engine.GET("api/metrics", gin.WrapH(metrics.MetricsHandler()))

	return s
}

// requestLogger derives a request-scoped logger carrying a fresh request id
// and stores it in the gin context, where handlers pick it up through
// system.GetReqLogger.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	sugar := log.Sugar()
	return func(c *gin.Context) {
		c.Set(system.ReqLoggerKey, sugar.With("requestID", uuid.NewString()))
		c.Next()
	}
}

func (s *Server) RegisterAll(controllers []APIController) error {
	r := s.gin.Group("api")
	for _, c := range controllers {
		if err := c.Register(r.Group(c.BasePath(), c.Handlers()...)); err != nil {
			return err
		}
	}
	return nil
}

// Listen blocks serving HTTP, or HTTPS when both TLS files are configured.
func (s *Server) Listen() error {
	if s.config.Server.TLSCertFile != "" && s.config.Server.TLSKeyFile != "" {
		return s.gin.RunTLS(s.config.Server.ListenAddress,
			s.config.Server.TLSCertFile, s.config.Server.TLSKeyFile)
	}
	return s.gin.Run(s.config.Server.ListenAddress)
}

func (s *Server) healthz(c *gin.Context) {
	apiresponses.RespondOK(c, gin.H{"status": "ok"})
}
