package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/pricelist/internal/config"
	"github.com/tuanvumaihuynh/pricelist/internal/http/apierr"
	"github.com/tuanvumaihuynh/pricelist/internal/http/metric"
	"github.com/tuanvumaihuynh/pricelist/internal/http/middleware"
	"github.com/tuanvumaihuynh/pricelist/internal/http/swagger"
	"github.com/tuanvumaihuynh/pricelist/internal/service"
	"github.com/tuanvumaihuynh/pricelist/internal/storage/db"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	corsCfg config.Cors
	logger  *slog.Logger

	productSvc service.ProductService
	termsSvc   service.TermsService
	health     db.HealthChecker
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	corsCfg config.Cors,
	log *slog.Logger,
	productSvc service.ProductService,
	termsSvc service.TermsService,
	health db.HealthChecker,
) *Service {
	return &Service{
		cfg:        cfg,
		corsCfg:    corsCfg,
		logger:     log.With(slog.String("service", "http")),
		productSvc: productSvc,
		termsSvc:   termsSvc,
		health:     health,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(metric.New()),
		middleware.CorrelationID(),
		middleware.Cors(s.corsCfg),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	productH := newProductHandler(s.productSvc)
	termsH := newTermsHandler(s.termsSvc)
	systemH := newSystemHandler(s.health)

	r.Route("/api", func(api chi.Router) {
		api.Get("/products", s.wrap(productH.listProducts))
		api.Get("/products/categories", s.wrap(productH.listCategories))
		api.Get("/products/{id}", s.wrap(productH.getProduct))
		api.Post("/products/{id}", s.wrap(productH.updateProduct))

		api.Get("/terms", s.wrap(termsH.getTerms))
		api.Get("/terms/sections", s.wrap(termsH.listSections))

		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusNotFound, apierr.ErrorResponse{
				Error: fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path),
			})
		})
	})

	r.Get("/", s.wrap(systemH.root))
	r.Get("/health", s.wrap(systemH.healthCheck))

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

// handlerFunc is an HTTP handler that reports its failure instead of writing
// it, so error rendering stays in one place.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Service) wrap(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
