package inspect

import "fmt"

// CreateInspection creates an inspection under an existing project.
// When the record references an artifact, the bytes were already written by
// the transport layer; a create that fails leaves at worst an orphaned file,
// never a dangling record.
func (s *Service) CreateInspection(inspection *Inspection) (*Inspection, error) {
	if _, err := s.GetProject(inspection.ProjectID); err != nil {
		return nil, err
	}

	created, err := s.db.CreateInspection(inspection)
	if err != nil {
		return nil, fmt.Errorf("creating inspection: %w", err)
	}
	s.logger.Info("inspection created", "id", created.ID, "project_id", created.ProjectID)
	return created, nil
}

// GetInspection returns an inspection by id.
func (s *Service) GetInspection(id int64) (*Inspection, error) {
	inspection, err := s.db.GetInspection(id)
	if err != nil {
		return nil, fmt.Errorf("getting inspection: %w", err)
	}
	if inspection == nil {
		return nil, &NotFoundError{Kind: "inspection", ID: id}
	}
	return inspection, nil
}

// ListInspections returns inspections ordered by id, optionally filtered
// by project (projectID 0 means all).
func (s *Service) ListInspections(projectID int64, offset, limit int) ([]*Inspection, error) {
	inspections, err := s.db.ListInspections(projectID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("listing inspections: %w", err)
	}
	return inspections, nil
}

// UpdateInspection applies a partial update. The record update commits
// first; only then, if the update replaced the report reference, the old
// report artifact is deleted. Cleanup failure is logged, never rolled back
// into the committed record.
func (s *Service) UpdateInspection(id int64, upd InspectionUpdate) (*Inspection, error) {
	current, err := s.GetInspection(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.db.UpdateInspection(id, upd)
	if err != nil {
		return nil, fmt.Errorf("updating inspection: %w", err)
	}
	if updated == nil {
		return nil, &NotFoundError{Kind: "inspection", ID: id}
	}

	if current.PDFPath != "" && current.PDFPath != updated.PDFPath {
		if err := s.store.Delete(current.PDFPath); err != nil {
			s.logger.Warn("stale report cleanup failed", "ref", current.PDFPath, "error", err)
		}
	}
	return updated, nil
}

// DeleteInspection deletes an inspection, its photos, its report artifact
// and every photo artifact. References are collected before any row is
// removed; artifacts are deleted only after the rows are gone.
func (s *Service) DeleteInspection(id int64) (*Inspection, error) {
	inspection, err := s.GetInspection(id)
	if err != nil {
		return nil, err
	}

	photos, err := s.db.ListPhotos(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("resolving photos: %w", err)
	}

	var refs []string
	if inspection.PDFPath != "" {
		refs = append(refs, inspection.PDFPath)
	}
	for _, p := range photos {
		if p.PhotoPath != "" {
			refs = append(refs, p.PhotoPath)
		}
	}

	deleted, err := s.db.DeleteInspection(id)
	if err != nil {
		return nil, fmt.Errorf("deleting inspection: %w", err)
	}
	if !deleted {
		return nil, &NotFoundError{Kind: "inspection", ID: id}
	}

	s.removeArtifacts(refs)
	s.logger.Info("inspection deleted", "id", id, "artifacts", len(refs))
	return inspection, nil
}
