package server

import (
	"time"

	"resumatch/internal/config"
	"resumatch/internal/engine"
	resumatchErrors "resumatch/internal/errors"
	"resumatch/internal/store"
	"resumatch/internal/types"
)

// ExtractRequest represents the request body for the extract endpoint
type ExtractRequest struct {
	JobDescription string `json:"jobDescription"`
}

// MatchRequest represents the request body for the match endpoint.
// Either a structured resume or raw resume text must be supplied. Keywords
// are matched as given when present; otherwise they are extracted from the
// job description.
type MatchRequest struct {
	Resume         *types.ParsedResume      `json:"resume,omitempty"`
	ResumeText     string                   `json:"resumeText,omitempty"`
	Keywords       *types.ExtractedKeywords `json:"keywords,omitempty"`
	JobDescription string                   `json:"jobDescription,omitempty"`
}

// DiffRequest represents the request body for the diff endpoint
type DiffRequest struct {
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
}

// ScoreRequest represents the request body for the score endpoint
type ScoreRequest struct {
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Keyword engine shared by all endpoints
	Engine *engine.Service

	// Optional analysis history
	History *store.History

	// Logger
	Logger *resumatchErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, eng *engine.Service, history *store.History, logger *resumatchErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Engine:         eng,
		History:        history,
		Logger:         logger,
	}
}
