// Package server exposes the inspection service over HTTP.
//
// The transport contract: uploads write bytes through the artifact store
// first and only then attach the resulting reference to a record, and
// request validation happens before any store mutation.
package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"sitecheck/internal/inspect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server wires the inspection service into an echo HTTP API under /api.
type Server struct {
	echo     *echo.Echo
	service  *inspect.Service
	store    inspect.ArtifactStore
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a Server with all routes registered.
func New(service *inspect.Service, store inspect.ArtifactStore, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		service:  service,
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}

	api := e.Group("/api")

	api.POST("/projects/", s.createProject)
	api.GET("/projects/", s.listProjects)
	api.GET("/projects/:id", s.getProject)
	api.PUT("/projects/:id", s.updateProject)
	api.DELETE("/projects/:id", s.deleteProject)
	api.GET("/projects/:id/storage", s.projectStorage)

	api.POST("/inspections/", s.createInspection)
	api.GET("/inspections/", s.listInspections)
	api.GET("/inspections/:id", s.getInspection)
	api.PUT("/inspections/:id", s.updateInspection)
	api.DELETE("/inspections/:id", s.deleteInspection)
	api.POST("/inspections/:id/pdf", s.uploadInspectionPDF)
	api.GET("/inspections/:id/pdf", s.downloadInspectionPDF)
	api.POST("/inspections/:id/report", s.generateInspectionReport)
	api.POST("/inspections/:id/photos", s.uploadPhoto)

	api.POST("/photos/", s.createPhoto)
	api.GET("/photos/", s.listPhotos)
	api.GET("/photos/:id", s.getPhoto)
	api.PUT("/photos/:id", s.updatePhoto)
	api.DELETE("/photos/:id", s.deletePhoto)
	api.GET("/photos/:id/file", s.downloadPhoto)

	return s
}

// Start begins serving on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.echo.Start(addr)
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// idParam parses the :id path parameter.
func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// pageParams parses the skip/limit query parameters. Limit defaults to
// 100 when absent or malformed.
func pageParams(c echo.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.QueryParam("skip"))
	limit = 100
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	return offset, limit
}

// domainError maps service errors to HTTP errors: NotFound to 404,
// everything else to a 500 with the cause kept internal.
func domainError(err error) error {
	if inspect.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error").WithInternal(err)
}

// bindAndValidate binds the request body into req and runs struct
// validation, rejecting malformed input before any store mutation.
func (s *Server) bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}
	if err := s.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not validate request: "+err.Error())
	}
	return nil
}
