// Package channel exposes the bot over Slack: an HTTP server that receives
// slash-command webhooks and a deliverer that posts assessment chunks back
// through the command's response_url.
package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slack-go/slack"

	"healthbot/internal/command"
	"healthbot/internal/domain"
	"healthbot/internal/metrics"
)

const usageText = `🚀 *Atlan Health Check*

📋 *Usage*: ` + "`/atlan-health CustomerName https://tenant.atlan.com [filter:value ...]`" + `

*Examples*:
• ` + "`/atlan-health \"Demo Corp\" https://demo.atlan.com`" + `
• ` + "`/atlan-health MegaBank https://megabank.atlan.com`" + `
• ` + "`/atlan-health \"DPR Construction\" https://dpr.atlan.com industry:construction tags:Safety,OSHA`" + `

🎯 *Industries*: finance, healthcare, construction, retail, technology, manufacturing
🔍 *Filters*: industry, tags, connections, certificate, asset_type`

// ServerConfig configures the Slack webhook server.
type ServerConfig struct {
	Host            string
	Port            int
	CommandPath     string // slash command webhook path (default: /slack/atlan-setup)
	InteractivePath string // interactive components path (default: /slack/interactive)
	SigningSecret   string // Slack signing secret; empty disables verification
	MetricsEndpoint string // metrics path; empty disables the endpoint
	Version         string
	Logger          *slog.Logger
}

// Server accepts Slack slash-command webhooks and queues assessment jobs.
type Server struct {
	cfg    ServerConfig
	bus    domain.JobBus
	logger *slog.Logger
	server *http.Server
}

// NewServer creates a webhook server that publishes parsed commands to bus.
func NewServer(cfg ServerConfig, bus domain.JobBus) *Server {
	if cfg.CommandPath == "" {
		cfg.CommandPath = "/slack/atlan-setup"
	}
	if cfg.InteractivePath == "" {
		cfg.InteractivePath = "/slack/interactive"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	return &Server{
		cfg:    cfg,
		bus:    bus,
		logger: cfg.Logger,
	}
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.CommandPath, s.handleCommand)
	mux.HandleFunc(s.cfg.InteractivePath, s.handleInteractive)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleRoot)
	if s.cfg.MetricsEndpoint != "" {
		mux.HandleFunc(s.cfg.MetricsEndpoint, metrics.Collector.Handler())
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("webhook server starting",
		"addr", s.server.Addr,
		"command_path", s.cfg.CommandPath,
	)
	if s.cfg.SigningSecret == "" {
		s.logger.Warn("signing secret not configured, request verification disabled")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("webhook server: %w", err)
	}
}

func (s *Server) handleCommand(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(rw, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB max
	if err != nil {
		http.Error(rw, "Bad Request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !s.verifySignature(rw, r.Header, body) {
		return
	}

	// SlashCommandParse consumes the body, which the verifier already read.
	r.Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		http.Error(rw, "Bad Request", http.StatusBadRequest)
		return
	}

	metrics.CommandsTotal.Inc()

	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		writeJSON(rw, http.StatusOK, map[string]string{
			"response_type": "ephemeral",
			"text":          usageText,
		})
		return
	}

	req := command.Parse(text)
	req.UserName = cmd.UserName
	req.ChannelName = cmd.ChannelName
	req.ResponseURL = cmd.ResponseURL

	s.logger.Info("slash command received",
		"company", req.Company,
		"industry", req.Industry,
		"tenant_url", req.TenantURL,
		"user", req.UserName,
	)

	// Acknowledge within Slack's 3-second window before queueing; Publish
	// can block when the queue is saturated.
	writeJSON(rw, http.StatusOK, map[string]string{
		"response_type": "in_channel",
		"text": fmt.Sprintf("🚀 *Health Check Started for %s*\n\n"+
			"📊 Analyzing your data ecosystem...\n"+
			"Results will be posted here shortly.", req.Company),
	})

	s.bus.Publish(domain.AssessmentJob{
		ID:      uuid.NewString(),
		Request: req,
		Queued:  time.Now(),
	})
}

func (s *Server) handleInteractive(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(rw, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(rw, "Bad Request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !s.verifySignature(rw, r.Header, body) {
		return
	}

	// Interactive components are acknowledged but not acted on yet.
	writeJSON(rw, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealth(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(rw, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(rw, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "healthbot",
		"version":   s.cfg.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRoot(rw http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(rw, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	s.handleHealth(rw, r)
}

// verifySignature checks the Slack v0 request signature when a signing
// secret is configured. It writes the error response itself and reports
// whether the caller may proceed.
func (s *Server) verifySignature(rw http.ResponseWriter, header http.Header, body []byte) bool {
	if s.cfg.SigningSecret == "" {
		return true
	}

	sv, err := slack.NewSecretsVerifier(header, s.cfg.SigningSecret)
	if err == nil {
		if _, werr := sv.Write(body); werr == nil {
			err = sv.Ensure()
		} else {
			err = werr
		}
	}
	if err != nil {
		s.logger.Warn("request signature rejected", "err", err)
		writeJSON(rw, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return false
	}
	return true
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	json.NewEncoder(rw).Encode(v)
}
