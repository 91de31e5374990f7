package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"callagent/internal/api"
	"callagent/internal/calls"
	"callagent/internal/config"
	"callagent/internal/conversation"
	"callagent/internal/export"
	"callagent/internal/llm"
	"callagent/internal/prompt"
	"callagent/internal/web"
)

type Server struct {
	cfg     *config.Config
	http    *http.Server
	store   conversation.Store
	closers []func() error
}

// NewLogger builds the process logger for the configured environment.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewStore opens the conversation store selected by the configuration.
func NewStore(cfg *config.Config) (conversation.Store, error) {
	if cfg.StoreBackend != config.BackendRedis {
		return conversation.NewStore(conversation.StoreTypeMemory)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return conversation.NewStore(conversation.StoreTypeRedis,
		conversation.WithRedisClient(redis.NewClient(opts)),
		conversation.WithRedisTTL(cfg.RedisTTL),
	)
}

// NewProvider returns the voice-call provider selected by the configuration.
func NewProvider(cfg *config.Config) calls.Provider {
	if cfg.CallProvider == config.ProviderTwilio {
		return calls.NewTwilioProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	}
	return calls.NewBlandProvider(cfg.BlandBaseURL, cfg.BlandAPIKey)
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{cfg: cfg}

	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}
	s.store = store
	s.closers = append(s.closers, store.Close)

	var history prompt.HistoryStore
	if cfg.DatabaseURL != "" {
		pg, err := prompt.OpenPostgresHistory(ctx, cfg.DatabaseURL)
		if err != nil {
			s.close()
			return nil, err
		}
		s.closers = append(s.closers, pg.Close)
		history = pg
	} else {
		history = prompt.NewMemoryHistory()
	}

	tmpl, err := web.Templates()
	if err != nil {
		s.close()
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	model := llm.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	sessions := prompt.NewSessions(prompt.NewAgentFactory(model, history, cfg.HistoryResponses, logger))

	router := api.NewRouter(api.Dependencies{
		Initiator: calls.NewInitiator(NewProvider(cfg), cfg.WebhookURL, cfg.OrganizationName, logger),
		Generator: prompt.NewGenerator(sessions),
		Store:     store,
		Exporter:  export.New(cfg.ExportDir),
		Templates: tmpl,
	}, websocket.Upgrader{})

	s.http = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) Start() error {
	zap.L().Info("Starting server",
		zap.String("addr", s.http.Addr),
		zap.String("call_provider", s.cfg.CallProvider),
		zap.String("store_backend", s.cfg.StoreBackend),
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.close()
	return err
}

func (s *Server) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			zap.L().Warn("Failed to close resource", zap.Error(err))
		}
	}
	s.closers = nil
}
