package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BlackMission/sociallogin/internal/auth"
	"github.com/BlackMission/sociallogin/internal/handler"
	"github.com/BlackMission/sociallogin/internal/login"
	"github.com/BlackMission/sociallogin/internal/metrics"
	"github.com/BlackMission/sociallogin/internal/observability/logger"
	"github.com/BlackMission/sociallogin/internal/redirect"
	"github.com/BlackMission/sociallogin/internal/render"
)

// ServerHeader is sent on every response.
const ServerHeader = "sociallogin"

// Config holds the server configuration.
type Config struct {
	Host string
	Port int
	// Redirect controls how callback URLs are built.
	Redirect redirect.Builder
}

// Deps holds the service dependencies. Metrics and Logger may be nil.
type Deps struct {
	Flow      *login.Flow
	Providers *auth.Registry
	Renderer  *render.Renderer
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	// HTTPClient is the outbound client shared by token exchange and
	// profile fetches. Its idle connections are released on Shutdown.
	HTTPClient *http.Client
}

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	outbound   *http.Client
	log        *zap.Logger
}

// New creates a new Server with all routes wired.
func New(cfg Config, deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = logger.Named("http")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(defaultHeaders)
	r.Use(accessLog(log, deps.Metrics))
	r.Use(middleware.Recoverer)

	r.Get("/", handler.Index(deps.Flow, deps.Renderer))
	r.Get("/login/", handler.Login(deps.Flow, deps.Renderer, cfg.Redirect))
	r.Get("/login/{provider}", handler.Login(deps.Flow, deps.Renderer, cfg.Redirect))
	r.Get("/health", handler.Health())
	r.Get("/providers", handler.Providers(deps.Providers))
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	return &Server{
		handler:  r,
		outbound: deps.HTTPClient,
		log:      log,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Handler returns the server's HTTP handler (for testing).
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins listening and serving.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("listening", zap.String("addr", ln.Addr().String()))
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server and then releases the outbound
// client's idle connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.outbound != nil {
		s.outbound.CloseIdleConnections()
	}
	return err
}

func defaultHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", ServerHeader)
		next.ServeHTTP(w, r)
	})
}

// accessLog logs one line per request and scopes a request logger into the
// context for downstream handlers.
func accessLog(log *zap.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With(logger.RequestID(middleware.GetReqID(r.Context())))
			r = r.WithContext(logger.ToContext(r.Context(), reqLog))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			d := time.Since(start)

			m.ObserveRequest(r.Method, route, status, d)
			reqLog.Info("request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Status(status),
				logger.Bytes(ww.BytesWritten()),
				logger.ClientIP(r.RemoteAddr),
				logger.UserAgent(r.UserAgent()),
				logger.Duration(d),
			)
		})
	}
}
