package server

import (
	"errors"
	"net/http"
	"strconv"

	"sitecheck/internal/inspect"

	"github.com/labstack/echo/v4"
)

type photoCreateRequest struct {
	InspectionID int64  `json:"inspection_id" validate:"required"`
	PhotoPath    string `json:"photo_path" validate:"required"`
	CaptureDate  string `json:"capture_date" validate:"omitempty,datetime=2006-01-02"`
	Caption      string `json:"caption"`
}

type photoUpdateRequest struct {
	PhotoPath   *string `json:"photo_path"`
	CaptureDate *string `json:"capture_date" validate:"omitempty,datetime=2006-01-02"`
	Caption     *string `json:"caption"`
}

func (s *Server) createPhoto(c echo.Context) error {
	var req photoCreateRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	photo, err := s.service.CreatePhoto(&inspect.Photo{
		InspectionID: req.InspectionID,
		PhotoPath:    req.PhotoPath,
		CaptureDate:  req.CaptureDate,
		Caption:      req.Caption,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, photo)
}

func (s *Server) listPhotos(c echo.Context) error {
	offset, limit := pageParams(c)
	inspectionID, err := optionalIDQuery(c, "inspection_id")
	if err != nil {
		return err
	}

	photos, err := s.service.ListPhotos(inspectionID, offset, limit)
	if err != nil {
		return domainError(err)
	}
	if photos == nil {
		photos = []*inspect.Photo{}
	}
	return c.JSON(http.StatusOK, photos)
}

func (s *Server) getPhoto(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	photo, err := s.service.GetPhoto(id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, photo)
}

func (s *Server) updatePhoto(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req photoUpdateRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	photo, err := s.service.UpdatePhoto(id, inspect.PhotoUpdate{
		PhotoPath:   req.PhotoPath,
		CaptureDate: req.CaptureDate,
		Caption:     req.Caption,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, photo)
}

func (s *Server) deletePhoto(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	photo, err := s.service.DeletePhoto(id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, photo)
}

// uploadPhoto accepts a multipart "file" field plus optional capture_date
// and caption form fields, writes the bytes through the artifact store,
// then creates the photo record pointing at the new reference.
func (s *Server) uploadPhoto(c echo.Context) error {
	inspectionID, err := idParam(c)
	if err != nil {
		return err
	}
	if _, err := s.service.GetInspection(inspectionID); err != nil {
		return domainError(err)
	}

	ref, err := s.storeUpload(c, inspect.CategoryPhoto)
	if err != nil {
		return err
	}

	photo, err := s.service.CreatePhoto(&inspect.Photo{
		InspectionID: inspectionID,
		PhotoPath:    ref,
		CaptureDate:  c.FormValue("capture_date"),
		Caption:      c.FormValue("caption"),
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, photo)
}

func (s *Server) downloadPhoto(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	photo, err := s.service.GetPhoto(id)
	if err != nil {
		return domainError(err)
	}
	return s.streamArtifact(c, photo.PhotoPath, "application/octet-stream")
}

// storeUpload writes the request's "file" field through the artifact
// store and returns the generated reference. The write must succeed
// before any record points at it.
func (s *Server) storeUpload(c echo.Context, category inspect.Category) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing file field")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unable to read upload").WithInternal(err)
	}
	defer src.Close()

	ref, err := s.store.Write(category, fileHeader.Filename, src)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "storing upload failed").WithInternal(err)
	}
	return ref, nil
}

// streamArtifact streams a stored artifact to the response, mapping a
// missing artifact to 404.
func (s *Server) streamArtifact(c echo.Context, ref, contentType string) error {
	rc, err := s.store.Open(ref)
	if err != nil {
		if errors.Is(err, inspect.ErrArtifactNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "artifact not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "reading artifact failed").WithInternal(err)
	}
	defer rc.Close()
	return c.Stream(http.StatusOK, contentType, rc)
}

// optionalIDQuery parses an optional numeric query parameter; 0 means
// absent (no filter).
func optionalIDQuery(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

