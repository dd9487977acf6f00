package worker

import (
	"net/http"

	"investmanager/src/config"
	"investmanager/src/utils"
	handlers "investmanager/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
}

func NewServer(handler *handlers.Handler, logger *logrus.Logger) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
	}
	server.Router.Use(middleware.Recoverer)
	server.Router.Use(utils.RequestLogger(logger))
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api/rates", func(r chi.Router) {
		r.Post("/warm", s.Handler.WarmRates)
	})
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
