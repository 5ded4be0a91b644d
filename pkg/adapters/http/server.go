package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/kwargs"
	"github.com/aretw0/kwargs/pkg/convert"
	"github.com/aretw0/kwargs/pkg/observability"
	"github.com/aretw0/kwargs/pkg/ports"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 8 << 20

// Server serves dict generation, echo and storage over HTTP.
type Server struct {
	store       ports.DictStore
	metrics     *observability.Metrics
	logger      *slog.Logger
	convertOpts []convert.Option
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the /dicts routes.
func WithStore(store ports.DictStore) Option {
	return func(s *Server) { s.store = store }
}

// WithMetrics records conversions and exposes /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConvertOptions passes options (e.g. max depth) to every conversion.
func WithConvertOptions(opts ...convert.Option) Option {
	return func(s *Server) { s.convertOpts = append(s.convertOpts, opts...) }
}

// NewServer builds a Server from options.
func NewServer(opts ...Option) *Server {
	s := &Server{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates the HTTP handler with all routes mounted.
func NewHandler(opts ...Option) http.Handler {
	return NewServer(opts...).Routes()
}

// Routes mounts the server on a chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/dict", s.GenerateDict)
	r.Post("/echo", s.EchoDict)

	if s.store != nil {
		r.Route("/dicts", func(r chi.Router) {
			r.Get("/", s.ListDicts)
			r.Put("/{name}", s.SaveDict)
			r.Get("/{name}", s.LoadDict)
			r.Delete("/{name}", s.DeleteDict)
		})
	}
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "kwargs-http",
		"version": kwargs.Version,
	})
}

// GenerateDict handles the GET /dict request.
func (s *Server) GenerateDict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	v, err := convert.FromHost(kwargs.GenerateDict())
	s.metrics.ObserveConversion("generate", start, err)
	if err != nil {
		s.fail(w, "GenerateDict", err)
		return
	}
	s.writeValue(w, r, http.StatusOK, v)
}

// EchoDict handles the POST /echo request. The body is converted to host
// objects, echoed across the boundary and written back.
func (s *Server) EchoDict(w http.ResponseWriter, r *http.Request) {
	in, ok := s.readValue(w, r, "EchoDict")
	if !ok {
		return
	}

	start := time.Now()
	out, err := s.echo(in)
	s.metrics.ObserveConversion("echo", start, err)
	if err != nil {
		s.fail(w, "EchoDict", err)
		return
	}
	s.writeValue(w, r, http.StatusOK, out)
}

func (s *Server) echo(in value.Value) (value.Value, error) {
	host, err := convert.ToHost(in, s.convertOpts...)
	if err != nil {
		return value.Null(), err
	}
	echoed, err := kwargs.EchoDict(host, s.convertOpts...)
	if err != nil {
		return value.Null(), err
	}
	return convert.FromHost(echoed, s.convertOpts...)
}

// ListDicts handles the GET /dicts request.
func (s *Server) ListDicts(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	s.metrics.ObserveStore("list", err)
	if err != nil {
		s.fail(w, "ListDicts", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// SaveDict handles the PUT /dicts/{name} request.
func (s *Server) SaveDict(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	in, ok := s.readValue(w, r, "SaveDict")
	if !ok {
		return
	}

	// Stored dicts obey the same depth bound as echo.
	start := time.Now()
	v, err := s.echo(in)
	s.metrics.ObserveConversion("save", start, err)
	if err != nil {
		s.fail(w, "SaveDict", err)
		return
	}

	err = s.store.Save(r.Context(), name, v)
	s.metrics.ObserveStore("save", err)
	if err != nil {
		s.fail(w, "SaveDict", err)
		return
	}
	s.logger.Debug("SaveDict: stored", "name", name, "tag", v.Tag())
	w.WriteHeader(http.StatusNoContent)
}

// LoadDict handles the GET /dicts/{name} request.
func (s *Server) LoadDict(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	v, err := s.store.Load(r.Context(), name)
	s.metrics.ObserveStore("load", err)
	if err != nil {
		s.fail(w, "LoadDict", err)
		return
	}
	s.writeValue(w, r, http.StatusOK, v)
}

// DeleteDict handles the DELETE /dicts/{name} request.
func (s *Server) DeleteDict(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := s.store.Delete(r.Context(), name)
	s.metrics.ObserveStore("delete", err)
	if err != nil {
		s.fail(w, "DeleteDict", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Helpers --

// readValue decodes the body as YAML when Content-Type says so, JSON otherwise.
// On failure it has already written the response.
func (s *Server) readValue(w http.ResponseWriter, r *http.Request, op string) (value.Value, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn(op+": Invalid request body", "error", err)
		return value.Null(), false
	}

	v, err := value.Decode(data, requestEncoding(r))
	if err != nil {
		status := http.StatusBadRequest
		if isConversionError(err) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), status)
		s.logger.Warn(op+": Invalid request body", "error", err)
		return value.Null(), false
	}
	return v, true
}

func (s *Server) writeValue(w http.ResponseWriter, r *http.Request, status int, v value.Value) {
	enc := responseEncoding(r)
	data, err := value.Encode(v, enc, false)
	if err != nil {
		s.fail(w, "Encode", err)
		return
	}
	if enc == value.EncodingYAML {
		w.Header().Set("Content-Type", "application/yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("response write failed", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Debug(op+" rejected", "error", err, "status", status)
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, value.ErrNotFound):
		return http.StatusNotFound
	case isConversionError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func isConversionError(err error) bool {
	return errors.Is(err, value.ErrUnsupportedType) ||
		errors.Is(err, value.ErrUnsupportedKeyType) ||
		errors.Is(err, value.ErrRecursionLimitExceeded)
}

func requestEncoding(r *http.Request) value.Encoding {
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		return value.EncodingYAML
	}
	return value.EncodingJSON
}

func responseEncoding(r *http.Request) value.Encoding {
	if f := r.URL.Query().Get("format"); f != "" {
		if enc, err := value.ParseEncoding(f); err == nil {
			return enc
		}
	}
	if strings.Contains(r.Header.Get("Accept"), "yaml") {
		return value.EncodingYAML
	}
	return value.EncodingJSON
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
