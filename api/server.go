package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Marvin-Brouwer/open-adr/api/handlers"
	apiMiddleware "github.com/Marvin-Brouwer/open-adr/api/middleware"
	"github.com/Marvin-Brouwer/open-adr/types"
	"github.com/Marvin-Brouwer/open-adr/types/config"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

type Server struct {
	host   string
	port   int
	config config.Config

	echo      *echo.Echo
	processor *types.Processor

	reportStorage   interfaces.Storage
	reportDirectory string
}

func NewServer() *Server {
	server, err := NewServerWithConfig(config.GetConfig())
	if err != nil {
		panic(err)
	}
	return server
}

// NewServerWithConfig builds a server for _config. Reports are only stored
// when a local root path or a MINIO bucket is configured.
func NewServerWithConfig(_config config.Config) (*Server, error) {
	var (
		reportStorage   interfaces.Storage
		reportDirectory string
	)
	if _config.Storage.Local.RootPath != "" || _config.Storage.Minio.Bucket != "" {
		storage, directory, err := types.NewReportStorage(_config.Storage)
		if err != nil {
			return nil, err
		}
		reportStorage, reportDirectory = storage, directory
	}

	_echo := echo.New()
	_echo.HideBanner = true
	_echo.Logger.SetLevel(config.ParseLogLevel(_config.Log.Level))

	var server = &Server{
		host:            _config.HTTPAPIServer.Host,
		port:            _config.HTTPAPIServer.Port,
		config:          _config,
		echo:            _echo,
		processor:       types.NewProcessor(_config, nil),
		reportStorage:   reportStorage,
		reportDirectory: reportDirectory,
	}
	server.echo.Use(middleware.Recover())
	server.echo.Use(
		apiMiddleware.ConfigMiddleware(_config),
	)

	return server, nil
}

func (s *Server) AddMiddleware(middleware ...echo.MiddlewareFunc) {
	s.echo.Use(middleware...)
}

func (s *Server) AddHTTPAPIRoute(method string, path string, handlerFunc echo.HandlerFunc) {
	s.echo.Add(method, path, handlerFunc)
}

// AddLintRoutes registers the health, settings, lint and report endpoints.
func (s *Server) AddLintRoutes() {
	s.AddHTTPAPIRoute(http.MethodGet, "/health", handlers.HealthHandler)
	s.AddHTTPAPIRoute(http.MethodGet, "/settings", handlers.SettingsHandler)
	s.AddHTTPAPIRoute(
		http.MethodPost,
		"/lint",
		handlers.LintHandler(s.processor, s.reportStorage, s.reportDirectory),
	)
	s.AddHTTPAPIRoute(
		http.MethodGet,
		"/reports",
		handlers.ReportsHandler(s.reportStorage, s.reportDirectory),
	)
	s.AddHTTPAPIRoute(
		http.MethodGet,
		"/reports/:name",
		handlers.ReportHandler(s.reportStorage, s.reportDirectory),
	)
}

func (s *Server) Start() error {
	err := s.echo.Start(s.GetAPIAddress())
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) NewContext(request *http.Request, writer http.ResponseWriter) echo.Context {
	return s.echo.NewContext(request, writer)
}

func (s *Server) GetHost() string {
	return s.host
}

func (s *Server) GetPort() int {
	return s.port
}

func (s *Server) GetAPIAddress() string {
	return fmt.Sprintf("%s:%d", s.host, s.port)
}

func (s *Server) GetEcho() *echo.Echo {
	return s.echo
}

func (s *Server) GetConfig() config.Config {
	return s.config
}

func (s *Server) GetProcessor() *types.Processor {
	return s.processor
}

func (s *Server) GetReportStorage() interfaces.Storage {
	return s.reportStorage
}
