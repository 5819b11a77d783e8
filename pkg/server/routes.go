package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/docebot/docebot/internal"
	"github.com/docebot/docebot/pkg/auth"
	"github.com/docebot/docebot/pkg/models"
	"github.com/docebot/docebot/pkg/server/apihandlers"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var log = internal.GetLogger()

const (
	ReadHeaderTimeout = 5 * time.Second

	// DefaultMaxRequestSize bounds request bodies; CSV uploads are the
	// largest expected payloads.
	DefaultMaxRequestSize = 5 << 20
)

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) *http.Server {
	router := setupRouter(appState)
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", appState.Config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

func setupRouter(appState *models.AppState) *chi.Mux {
	maxRequestSize := appState.Config.Server.MaxRequestSize
	if maxRequestSize == 0 {
		maxRequestSize = DefaultMaxRequestSize
	}

	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestSize(maxRequestSize))
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))

	if appState.Config.Auth.Required {
		log.Info("JWT authentication required")
		router.Use(auth.JWTVerifier(appState.Config))
		router.Use(jwtauth.Authenticator)
	}

	router.Route("/api/v1", func(r chi.Router) {
		// Chat routes
		r.Post("/chat", apihandlers.PostChatHandler(appState))
		r.Get("/chat/intents", apihandlers.GetIntentsHandler(appState))

		// Plain JSON lookups
		r.Get("/users/{user}/enrollments", apihandlers.GetUserEnrollmentsHandler(appState))

		// CSV bulk enrollment routes
		r.Route("/csv", func(r chi.Router) {
			r.Post("/enroll", apihandlers.PostCSVEnrollHandler(appState))
			r.Post("/validate", apihandlers.PostCSVValidateHandler(appState))
			r.Get("/template/{operation}", apihandlers.GetCSVTemplateHandler())
			r.Get("/operations", apihandlers.GetCSVOperationsHandler())
		})
	})

	return router
}
