package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ruthina1/Dev-Genie/internal/logging"
	"github.com/ruthina1/Dev-Genie/internal/ops"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates the HTTP server for the Dev-Genie web UI and API.
func NewServer(env ops.Env, version, bind string, port int) (*http.Server, error) {
	h, err := newHandlers(env, version)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", bind, port),
		Handler:           h.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func newHandlers(env ops.Env, version string) (*Handlers, error) {
	// Strip the "templates/" and "static/" prefixes
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("template sub-FS: %w", err)
	}
	if env.Logger == nil {
		env.Logger = logging.Discard()
	}
	return &Handlers{
		env:      env,
		renderer: NewRenderer(templateSub, version, env.Logger),
		cache:    newArchiveCache(archiveCacheSize, archiveCacheTTL),
		metrics:  newMetrics(),
	}, nil
}

func (h *Handlers) routes() http.Handler {
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("static sub-FS: %v", err))
	}

	mux := http.NewServeMux()

	// UI
	mux.HandleFunc("GET /{$}", h.metrics.instrument("index", h.HandleIndex))
	mux.HandleFunc("POST /generate", h.metrics.instrument("generate", h.HandleGenerate))
	mux.HandleFunc("GET /download/{id}", h.metrics.instrument("download", h.HandleDownload))
	mux.HandleFunc("GET /history", h.metrics.instrument("history", h.HandleHistory))
	mux.HandleFunc("GET /templates", h.metrics.instrument("templates", h.HandleTemplates))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	// API consumed by remote clients
	api := http.NewServeMux()
	api.HandleFunc("GET /health", h.metrics.instrument("api_health", h.HandleHealth))
	api.HandleFunc("POST /api/generate/basic", h.metrics.instrument("api_generate_basic", h.HandleAPIGenerateBasic))
	api.HandleFunc("POST /api/generate/advanced", h.metrics.instrument("api_generate_advanced", h.HandleAPIGenerateAdvanced))
	api.HandleFunc("GET /api/download/{id}", h.metrics.instrument("api_download", h.HandleAPIDownload))
	api.HandleFunc("POST /api/parse-prompt", h.metrics.instrument("api_parse_prompt", h.HandleAPIParsePrompt))
	api.HandleFunc("GET /api/templates", h.metrics.instrument("api_templates", h.HandleAPITemplates))
	api.HandleFunc("GET /api/architectures", h.metrics.instrument("api_architectures", h.HandleAPIArchitectures))
	api.HandleFunc("GET /api/frameworks", h.metrics.instrument("api_frameworks", h.HandleAPIFrameworks))
	mux.Handle("/api/", cors(api))
	mux.Handle("/health", cors(api))

	mux.Handle("GET /metrics", h.metrics.handler())

	return securityHeaders(mux)
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// cors opens the API to browser clients on other origins.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("Dev-Genie UI running", "url", "http://"+srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		logger.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
