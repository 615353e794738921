// Package main provides the API server entry point.
package main

import (
	"github.com/lllypuk/catmap/internal/config"
	"github.com/lllypuk/catmap/internal/infrastructure/httpserver"
	"github.com/lllypuk/catmap/internal/middleware"
)

// newServer builds the HTTP server from the server section of the config.
func newServer(c *Container) *httpserver.Server {
	return httpserver.NewServer(serverConfig(c.Config), c.Logger)
}

func serverConfig(cfg *config.Config) httpserver.ServerConfig {
	return httpserver.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		BodyLimit:       cfg.Server.BodyLimit,
	}
}

// SetupRoutes installs the global middleware and registers the GraphQL
// endpoint, the upload routes, metrics and health probes on server.
func SetupRoutes(c *Container, server *httpserver.Server) *httpserver.Router {
	logging := middleware.DefaultLoggingConfig()
	logging.Logger = c.Logger

	recovery := middleware.DefaultRecoveryConfig()
	recovery.Logger = c.Logger

	router := httpserver.NewRouter(server.Echo(), httpserver.RouterConfig{
		Logger:         c.Logger,
		CORSConfig:     middleware.CORSConfigFor(c.Config.Server.CORSOrigins),
		LoggingConfig:  logging,
		RecoveryConfig: recovery,
		APIPrefix:      "/api/v1",
	})

	// Container implements httpserver.HealthChecker.
	router.RegisterHealthEndpointsWithChecker(c)
	router.RegisterMetricsEndpoint(c.Registry)

	router.RegisterAll(c.GraphQLHandler, c.UploadHandler)

	if c.Config.IsDevelopment() {
		router.PrintRoutes()
	}

	return router
}
