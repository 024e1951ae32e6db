package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/keyran/recipekit"
)

// DefaultAddr is the address the API listens on unless configured.
const DefaultAddr = ":9541"

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server shuts down.
const ShutdownTimeout = 5 * time.Second

// Server serves the recipe extraction API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *mux.Router

	// Addr is the bind address, e.g. ":9541".
	Addr string

	// Services used by the handlers. Store may be nil, in which case
	// save requests are rejected.
	Parser recipekit.RecipeParser
	Store  recipekit.RecipeStore

	// Metrics, when set, is served at /metrics.
	Metrics http.Handler

	Logger *slog.Logger
}

// NewServer creates a Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router: mux.NewRouter(),
		Addr:   DefaultAddr,
		Logger: slog.New(slog.DiscardHandler),
	}
	s.server.Handler = s

	s.router.HandleFunc("/parse", s.handleParse).Methods(http.MethodGet, http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.Handle("/metrics", http.HandlerFunc(s.handleMetrics)).Methods(http.MethodGet)

	return s
}

// Open begins listening on the bind address and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP routes the request and logs it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	defer func(begin time.Time) {
		s.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(begin),
		)
	}(time.Now())
	s.router.ServeHTTP(rec, r)
}

// handleParse extracts the recipe at ?uri= and optionally stores it
// when save=1.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	uri := r.FormValue("uri")
	if uri == "" {
		s.Error(w, r, recipekit.Errorf(recipekit.EINVALID, "uri parameter required"))
		return
	}

	recipe, err := s.Parser.Parse(r.Context(), uri)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if save := r.FormValue("save"); save == "1" || save == "true" {
		if s.Store == nil {
			s.Error(w, r, recipekit.Errorf(recipekit.EINVALID, "saving is not enabled on this server"))
			return
		}
		if err := s.Store.SaveRecipe(r.Context(), recipe); err != nil {
			s.Error(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := recipe.WriteJSON(w); err != nil {
		s.Logger.Error("write response", "err", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.Metrics == nil {
		s.Error(w, r, recipekit.Errorf(recipekit.ENOTFOUND, "metrics are not enabled"))
		return
	}
	s.Metrics.ServeHTTP(w, r)
}

// Error writes err as a JSON error response with a status derived from
// its application error code. Internal errors are logged.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := recipekit.ErrorCode(err), recipekit.ErrorMessage(err)
	if code == recipekit.EINTERNAL {
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(ErrorStatusCode(code))
	_ = json.NewEncoder(w).Encode(&ErrorResponse{Error: message})
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

var codes = map[string]int{
	recipekit.EINVALID:     http.StatusBadRequest,
	recipekit.ENOTFOUND:    http.StatusNotFound,
	recipekit.EUNSUPPORTED: http.StatusUnprocessableEntity,
	recipekit.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
