package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skimtext/skim/pkg/cache"
	"github.com/skimtext/skim/pkg/config"
	"github.com/skimtext/skim/pkg/metrics"
	"github.com/skimtext/skim/pkg/segment"
	"github.com/skimtext/skim/pkg/summary"
	"github.com/skimtext/skim/pkg/telemetry"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the Skim HTTP API server",
	Long: `Starts an HTTP API server for document summarization.
Clients send a document and receive the selected sentences.

Example:
  skim api --port 8080

The server exposes:
  POST /v1/summarize - Summarize a document
  GET  /health       - Health check
  GET  /metrics      - Prometheus metrics`,
	RunE: runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().IntP("port", "p", 8080, "HTTP server port")
	apiCmd.Flags().String("host", "0.0.0.0", "HTTP server host")
	apiCmd.Flags().String("api-keys", "", "Comma-separated list of valid API keys (or use SKIM_API_KEYS)")
	apiCmd.Flags().Bool("no-cache", false, "Disable the in-memory summary cache")
}

// SummarizeRequest is the JSON request body for /v1/summarize.
type SummarizeRequest struct {
	Text      string  `json:"text"`
	Language  string  `json:"language,omitempty"`
	Sentences int     `json:"sentences,omitempty"`
	Ratio     float64 `json:"ratio,omitempty"`
}

// SummarizeResponse is the JSON response for /v1/summarize.
type SummarizeResponse struct {
	Sentences []string       `json:"sentences"`
	Stats     SummarizeStats `json:"stats"`
}

// SummarizeStats contains processing statistics.
type SummarizeStats struct {
	InputBytes      int   `json:"input_bytes"`
	OutputSentences int   `json:"output_sentences"`
	Cached          bool  `json:"cached"`
	LatencyMs       int64 `json:"latency_ms"`
}

// APIServer holds the API server state.
type APIServer struct {
	cfg       *config.Config
	metrics   *metrics.Metrics
	tracing   *telemetry.Provider
	cache     *cache.Cache
	validKeys map[string]bool
	hasAuth   bool
}

func runAPI(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	host, _ := cmd.Flags().GetString("host")
	apiKeysStr, _ := cmd.Flags().GetString("api-keys")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = host
	}

	if apiKeysStr == "" {
		apiKeysStr = os.Getenv("SKIM_API_KEYS")
	}
	if apiKeysStr == "" {
		apiKeysStr = strings.Join(cfg.Auth.APIKeys, ",")
	}

	validKeys := make(map[string]bool)
	for _, key := range strings.Split(apiKeysStr, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			validKeys[key] = true
		}
	}

	ctx := context.Background()

	tracing, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Tracing.Enabled,
		Exporter:    cfg.Telemetry.Tracing.Exporter,
		Endpoint:    cfg.Telemetry.Tracing.Endpoint,
		SampleRate:  cfg.Telemetry.Tracing.SampleRate,
		ServiceName: "skim",
		Insecure:    cfg.Telemetry.Tracing.Insecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	server := &APIServer{
		cfg:       cfg,
		metrics:   metrics.New(),
		tracing:   tracing,
		validKeys: validKeys,
		hasAuth:   len(validKeys) > 0,
	}
	if cfg.Cache.Enabled && !noCache {
		server.cache = cache.New(cache.Config{
			MaxEntries: cfg.Cache.MaxEntries,
			TTL:        cfg.Cache.TTL,
		})
	}

	// Setup routes
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/summarize", server.metrics.Middleware("summarize", server.handleSummarize))
	mux.HandleFunc("/v1/cache/flush", server.metrics.Middleware("cache_flush", server.handleCacheFlush))
	mux.HandleFunc("/health", server.handleHealth)
	mux.Handle("/metrics", server.metrics.Handler())
	mux.HandleFunc("/", server.handleRoot)

	handler := corsMiddleware(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		fmt.Fprintln(os.Stderr, "\nShutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Server shutdown error: %v\n", err)
		}
		close(done)
	}()

	fmt.Printf("Skim API server starting on %s\n", addr)
	fmt.Printf("  Cache: %v\n", server.cache != nil)
	fmt.Printf("  Auth: %v (%d keys)\n", server.hasAuth, len(validKeys))
	fmt.Println()
	fmt.Println("Endpoints:")
	fmt.Printf("  POST http://%s/v1/summarize\n", addr)
	fmt.Printf("  POST http://%s/v1/cache/flush\n", addr)
	fmt.Printf("  GET  http://%s/health\n", addr)
	fmt.Printf("  GET  http://%s/metrics\n", addr)
	fmt.Println()

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	fmt.Println("Server stopped")
	return nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *APIServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"name":    "Skim API",
		"version": "0.1.0",
		"endpoints": map[string]string{
			"summarize":   "POST /v1/summarize",
			"cache_flush": "POST /v1/cache/flush",
			"health":      "GET /health",
			"metrics":     "GET /metrics",
		},
	})
}

func (s *APIServer) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.authorized(w, r) {
		return
	}

	ctx, span := s.tracing.StartRequest(r.Context(), "summarize")
	defer span.End()

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.Sentences > 0 && req.Ratio > 0 {
		http.Error(w, "sentences and ratio are mutually exclusive", http.StatusBadRequest)
		return
	}

	language := req.Language
	if language == "" {
		language = s.cfg.Summary.Language
	}

	// Default selection parameters from config
	n := req.Sentences
	ratio := req.Ratio
	if n == 0 && ratio == 0 {
		n = s.cfg.Summary.Sentences
		if n == 0 {
			ratio = s.cfg.Summary.Ratio
		}
	}

	mode, param := "ratio", ratio
	if n > 0 {
		mode, param = "sentences", float64(n)
	}

	start := time.Now()

	// Cache lookup
	var key string
	if s.cache != nil {
		key = cache.Key(req.Text, language, mode, param)

		_, lookupSpan := s.tracing.StartCacheLookup(ctx, key)
		sentences, err := s.cache.Get(key)
		lookupSpan.End()

		if err == nil {
			s.metrics.RecordCacheLookup(true)
			writeSummary(w, sentences, SummarizeStats{
				InputBytes:      len(req.Text),
				OutputSentences: len(sentences),
				Cached:          true,
				LatencyMs:       time.Since(start).Milliseconds(),
			})
			return
		}
		s.metrics.RecordCacheLookup(false)
	}

	summarizer, err := newSummarizer(language)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, sumSpan := s.tracing.StartSummarize(ctx, language, len(req.Text))
	sentences, err := summarize(summarizer, req.Text, n, ratio)
	sumSpan.End()

	if err != nil {
		telemetry.RecordError(span, err)
		status := http.StatusInternalServerError
		if errors.Is(err, summary.ErrInvalidRatio) ||
			errors.Is(err, summary.ErrInvalidSentenceCount) ||
			errors.Is(err, summary.ErrDocumentTooLarge) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	latency := time.Since(start)
	inputSentences := len(segment.Sentences(req.Text))
	telemetry.RecordResult(span, inputSentences, len(sentences), latency)
	s.metrics.RecordSummary("summarize", inputSentences, len(sentences))

	if s.cache != nil {
		s.cache.Set(key, sentences)
	}

	writeSummary(w, sentences, SummarizeStats{
		InputBytes:      len(req.Text),
		OutputSentences: len(sentences),
		Cached:          false,
		LatencyMs:       latency.Milliseconds(),
	})
}

func writeSummary(w http.ResponseWriter, sentences []string, stats SummarizeStats) {
	if sentences == nil {
		sentences = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(SummarizeResponse{
		Sentences: sentences,
		Stats:     stats,
	})
}

// handleCacheFlush drops all cached summaries. Lets operators invalidate
// stale results after a config change without restarting the server.
func (s *APIServer) handleCacheFlush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.authorized(w, r) {
		return
	}

	flushed := 0
	if s.cache != nil {
		flushed = s.cache.Stats().Size
		s.cache.Clear()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"flushed": flushed,
	})
}

// authorized enforces Bearer-key auth when keys are configured. It
// writes the error response itself and reports whether the request may
// proceed.
func (s *APIServer) authorized(w http.ResponseWriter, r *http.Request) bool {
	if !s.hasAuth {
		return true
	}
	auth := r.Header.Get("Authorization")
	if auth == "" {
		http.Error(w, "Authorization header required", http.StatusUnauthorized)
		return false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	if !s.validKeys[token] {
		http.Error(w, "Invalid API key", http.StatusUnauthorized)
		return false
	}
	return true
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
