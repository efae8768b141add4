package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagesum"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds graceful shutdown of in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// maxRequestBytes caps JSON request bodies.
const maxRequestBytes = 1 << 20

//go:embed docs.html
var docsHTML []byte

// Server exposes a pagesum.Service over a small JSON API.
type Server struct {
	// Addr is the TCP address to listen on, e.g. ":5000".
	Addr string

	Service pagesum.Service
	Logger  *slog.Logger

	// Now returns the current time. Used by the health endpoint.
	Now func() time.Time

	ShutdownTimeout time.Duration
}

// NewServer returns a new Server for svc.
func NewServer(svc pagesum.Service, logger *slog.Logger) *Server {
	return &Server{
		Addr:            ":5000",
		Service:         svc,
		Logger:          logger,
		Now:             time.Now,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDocs)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /scrape", s.handleScrape)
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.Handle("/{$}", s.methodNotAllowed(http.MethodGet))
	mux.Handle("/health", s.methodNotAllowed(http.MethodGet))
	mux.Handle("/scrape", s.methodNotAllowed(http.MethodPost))
	mux.Handle("/summarize", s.methodNotAllowed(http.MethodPost))
	mux.HandleFunc("/", s.handleNotFound)
	return s.withRequestID(s.withLogging(s.withRecover(mux)))
}

// ListenAndServe listens on Addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()
		s.Logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type healthResponse struct {
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	Timestamp float64 `json:"timestamp"`
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(docsHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:    "healthy",
		Message:   "Web scraper backend is running",
		Timestamp: float64(s.Now().UnixNano()) / 1e9,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "Endpoint not found"})
}

// methodNotAllowed answers requests to a known path with an unsupported method.
func (s *Server) methodNotAllowed(allow string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		s.writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})
}

// writeError writes err as a failed JSON response. Caller errors map to 400,
// unexpected errors to 500 and every other pipeline failure to 200.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := pagesum.ErrorCode(err), pagesum.ErrorMessage(err)

	status := http.StatusOK
	switch code {
	case pagesum.EINVALID:
		status = http.StatusBadRequest
	case pagesum.EINTERNAL:
		status = http.StatusInternalServerError
		s.logger(r).Error("internal error", "path", r.URL.Path, "err", err)
	}

	s.writeJSON(w, r, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger(r).Error("encode response", "err", err)
	}
}

// decodeJSON reads a JSON request body into v. It reports false for an
// empty, null or malformed body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return false
	}
	if string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}
