package server

import (
	"net/http"

	"sitecheck/internal/inspect"

	"github.com/labstack/echo/v4"
)

type projectCreateRequest struct {
	Name       string `json:"name" validate:"required"`
	Location   string `json:"location"`
	Contractor string `json:"contractor"`
	StartDate  string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type projectUpdateRequest struct {
	Name       *string `json:"name"`
	Location   *string `json:"location"`
	Contractor *string `json:"contractor"`
	StartDate  *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func (s *Server) createProject(c echo.Context) error {
	var req projectCreateRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := s.service.CreateProject(&inspect.Project{
		Name:       req.Name,
		Location:   req.Location,
		Contractor: req.Contractor,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, project)
}

func (s *Server) listProjects(c echo.Context) error {
	offset, limit := pageParams(c)
	projects, err := s.service.ListProjects(offset, limit)
	if err != nil {
		return domainError(err)
	}
	if projects == nil {
		projects = []*inspect.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) getProject(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	project, err := s.service.GetProject(id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) updateProject(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req projectUpdateRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := s.service.UpdateProject(id, inspect.ProjectUpdate{
		Name:       req.Name,
		Location:   req.Location,
		Contractor: req.Contractor,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) deleteProject(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	project, err := s.service.DeleteProject(id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) projectStorage(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	report, err := s.service.ProjectStorage(id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"project_id":  report.ProjectID,
		"total_bytes": report.TotalBytes,
		"total_human": inspect.FormatSize(report.TotalBytes),
		"file_count":  report.FileCount,
		"pdf_count":   report.PDFCount,
		"photo_count": report.PhotoCount,
		"files":       report.Files,
		"missing":     report.Missing,
	})
}
