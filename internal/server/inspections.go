package server

import (
	"net/http"

	"sitecheck/internal/inspect"

	"github.com/labstack/echo/v4"
)

type inspectionCreateRequest struct {
	ProjectID      int64  `json:"project_id" validate:"required"`
	SubprojectName string `json:"subproject_name" validate:"required"`
	FormName       string `json:"form_name" validate:"required"`
	InspectionDate string `json:"inspection_date" validate:"omitempty,datetime=2006-01-02"`
	Location       string `json:"location"`
	Timing         string `json:"timing"`
	Result         string `json:"result"`
	Remark         string `json:"remark"`
	PDFPath        string `json:"pdf_path"`
}

type inspectionUpdateRequest struct {
	SubprojectName *string `json:"subproject_name"`
	FormName       *string `json:"form_name"`
	InspectionDate *string `json:"inspection_date" validate:"omitempty,datetime=2006-01-02"`
	Location       *string `json:"location"`
	Timing         *string `json:"timing"`
	Result         *string `json:"result"`
	Remark         *string `json:"remark"`
	PDFPath        *string `json:"pdf_path"`
}

func (s *Server) createInspection(c echo.Context) error {
	var req inspectionCreateRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	inspection, err := s.service.CreateInspection(&inspect.Inspection{
		ProjectID:      req.ProjectID,
		SubprojectName: req.SubprojectName,
		FormName:       req.FormName,
		InspectionDate: req.InspectionDate,
		Location:       req.Location,
		Timing:         req.Timing,
		Result:         req.Result,
		Remark:         req.Remark,
		PDFPath:        req.PDFPath,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, inspection)
}

func (s *Server) listInspections(c echo.Context) error {
	offset, limit := pageParams(c)
	projectID, err := optionalIDQuery(c, "project_id")
	if err != nil {
		return err
	}

	inspections, err := s.service.ListInspections(projectID, offset, limit)
	if err != nil {
		return domainError(err)
	}
	if inspections == nil {
		inspections = []*inspect.Inspection{}
	}
	return c.JSON(http.StatusOK, inspections)
}

func (s *Server) getInspection(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	inspection, err := s.service.GetInspection(id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, inspection)
}

func (s *Server) updateInspection(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req inspectionUpdateRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	inspection, err := s.service.UpdateInspection(id, inspect.InspectionUpdate{
		SubprojectName: req.SubprojectName,
		FormName:       req.FormName,
		InspectionDate: req.InspectionDate,
		Location:       req.Location,
		Timing:         req.Timing,
		Result:         req.Result,
		Remark:         req.Remark,
		PDFPath:        req.PDFPath,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, inspection)
}

func (s *Server) deleteInspection(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	inspection, err := s.service.DeleteInspection(id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, inspection)
}

// uploadInspectionPDF accepts a multipart "file" field, writes the bytes
// through the artifact store, and only then attaches the reference to the
// inspection. The attach path cleans up a replaced report.
func (s *Server) uploadInspectionPDF(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if _, err := s.service.GetInspection(id); err != nil {
		return domainError(err)
	}

	ref, err := s.storeUpload(c, inspect.CategoryReport)
	if err != nil {
		return err
	}

	inspection, err := s.service.UpdateInspection(id, inspect.InspectionUpdate{PDFPath: &ref})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, inspection)
}

func (s *Server) downloadInspectionPDF(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	inspection, err := s.service.GetInspection(id)
	if err != nil {
		return domainError(err)
	}
	if inspection.PDFPath == "" {
		return echo.NewHTTPError(http.StatusNotFound, "inspection has no report")
	}
	return s.streamArtifact(c, inspection.PDFPath, "application/pdf")
}

func (s *Server) generateInspectionReport(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	inspection, err := s.service.GenerateInspectionReport(id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, inspection)
}
