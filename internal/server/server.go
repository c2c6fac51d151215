package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/emberfall-games/guildhall/internal/auth"
	"github.com/emberfall-games/guildhall/internal/catalog"
	"github.com/emberfall-games/guildhall/internal/database"
	"github.com/emberfall-games/guildhall/internal/guild"
	"github.com/emberfall-games/guildhall/internal/handler"
	"github.com/emberfall-games/guildhall/internal/logger"
	"github.com/emberfall-games/guildhall/internal/metrics"
	"github.com/emberfall-games/guildhall/internal/player"
	"github.com/emberfall-games/guildhall/internal/shop"
	"github.com/emberfall-games/guildhall/internal/task"
)

// Services bundles everything the router needs.
type Services struct {
	Auth    auth.Service
	Player  player.Service
	Catalog catalog.Service
	Task    task.Service
	Guild   guild.Service
	Shop    shop.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	authHandler := handler.NewAuthHandler(svcs.Auth)
	playerHandler := handler.NewPlayerHandler(svcs.Player)
	catalogHandler := handler.NewCatalogHandler(svcs.Catalog)
	taskHandler := handler.NewTaskHandler(svcs.Task)
	guildHandler := handler.NewGuildHandler(svcs.Guild)
	shopHandler := handler.NewShopHandler(svcs.Shop)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Catalog routes (public, read-only)
		r.Get("/items", catalogHandler.Items)
		r.Get("/recipes", catalogHandler.Recipes)
		r.Get("/adventures", catalogHandler.Templates)
		r.Get("/monsters", catalogHandler.Monsters)

		// Shop browsing is public; trading requires a player
		r.Get("/shops", shopHandler.List)
		r.Get("/shops/{shopID}/stock", shopHandler.Stock)

		// Player-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(svcs.Auth, svcs.Player))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", playerHandler.Profile)
				r.Put("/", playerHandler.UpdateProfile)
			})
			r.Get("/inventory", playerHandler.Inventory)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/craft", taskHandler.StartCraft)
				r.Post("/craft/claim", taskHandler.ClaimCraft)
				r.Post("/gather", taskHandler.StartGather)
				r.Post("/gather/claim", taskHandler.ClaimGather)
				r.Post("/adventure", taskHandler.StartAdventure)
				r.Post("/adventure/claim", taskHandler.ClaimAdventure)
			})

			r.Route("/guilds", func(r chi.Router) {
				r.Post("/", guildHandler.Create)
				r.Get("/mine", guildHandler.Get)
				r.Post("/promote", guildHandler.Promote)
			})

			r.Post("/shops/{shopID}/buy", shopHandler.Buy)
			r.Post("/shops/{shopID}/sell", shopHandler.Sell)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
