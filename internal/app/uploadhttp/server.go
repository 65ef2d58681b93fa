package uploadhttp

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"

	"github.com/sir_venger/upload_lite/internal/config"
	"github.com/sir_venger/upload_lite/internal/logging"
	"github.com/sir_venger/upload_lite/internal/usecase/uploadsvc"
)

// Server обслуживает приём файлов.
type Server struct {
	Uploads uploadsvc.Service
	Cfg     *config.Config

	log      *log.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

// Option донастраивает сервер при сборке.
type Option func(*options)

type options struct {
	fs     afero.Fs
	logger *log.Logger
}

// WithFs подменяет файловую систему каталога загрузок.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogger задаёт логгер сервера.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewServer конструктор
func NewServer(cfg *config.Config, opts ...Option) (http.Handler, *Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	o := options{fs: afero.NewOsFs(), logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	reg := prometheus.NewRegistry()
	srv := &Server{
		Uploads:  buildUploadService(cfg, o),
		Cfg:      cfg,
		log:      o.logger,
		registry: reg,
		metrics:  newMetrics(reg),
	}

	return srv.routes(), srv, nil
}

func buildUploadService(cfg *config.Config, o options) uploadsvc.Service {
	return uploadsvc.New(uploadsvc.Deps{
		Fs:          o.fs,
		UploadDir:   cfg.UploadDir,
		Lenient:     cfg.LenientStream,
		KeepPartial: cfg.KeepPartial,
		Logger:      o.logger,
	})
}

// routes регистрирует обработчики и цепочку middleware.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.Cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.With(limitBody(s.Cfg.MaxBodyBytes)).Post("/upload", s.upload)
	r.Get("/health", s.health)
	if s.Cfg.Metrics {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return r
}
