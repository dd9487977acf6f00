package api

import (
	"net/http"

	handlers "investmanager/src/api/handlers"
	"investmanager/src/config"
	"investmanager/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
}

func NewServer(handler *handlers.Handler, logger *logrus.Logger, allowedOrigins []string) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
	}
	server.InitMiddleware(logger, allowedOrigins)
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitMiddleware(logger *logrus.Logger, allowedOrigins []string) {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	s.Router.Use(middleware.Recoverer)
	// dashboard clients call /api/assets/add/ and /api/assets/{id}/delete/
	s.Router.Use(middleware.StripSlashes)
	s.Router.Use(utils.RequestLogger(logger))
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Get("/", s.Handler.Dashboard)
	s.Router.Get("/dashboard/chart", s.Handler.DashboardChart)

	s.Router.Route("/api/assets", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllAssets)
		r.Post("/", s.Handler.CreateAsset)
		r.Post("/add", s.Handler.CreateAsset)
		r.Delete("/{id}", s.Handler.DeleteAsset)
		r.Delete("/{id}/delete", s.Handler.DeleteAsset)
	})

	s.Router.Route("/api/portfolio", func(r chi.Router) {
		r.Get("/", s.Handler.GetPortfolio)
		r.Get("/export.xlsx", s.Handler.ExportPortfolio)
		r.Get("/report.pdf", s.Handler.GetPortfolioReport)
	})

	s.Router.Get("/api/rates/{code}", s.Handler.GetRate)
}

func NewHTTPServer(server http.Handler, cfg config.ServiceConfig) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Handler:      server,
	}
	return httpServer
}
