package inspect

import (
	"bytes"
	"fmt"
)

// ReportGenerator renders an inspection and its photos into a document.
// Photo bytes are resolved through the store; implementations skip photos
// whose artifact is missing.
type ReportGenerator interface {
	Generate(inspection *Inspection, photos []*Photo, store ArtifactStore) ([]byte, error)
}

// GenerateInspectionReport renders a report document for the inspection,
// writes it through the artifact store under a fresh reference, and
// attaches the reference to the record. Attaching goes through the normal
// update path, so a previously attached report is cleaned up only after
// the new reference has committed.
func (s *Service) GenerateInspectionReport(id int64) (*Inspection, error) {
	if s.reports == nil {
		return nil, fmt.Errorf("report generation not configured")
	}

	inspection, err := s.GetInspection(id)
	if err != nil {
		return nil, err
	}
	photos, err := s.db.ListPhotos(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("resolving photos: %w", err)
	}

	doc, err := s.reports.Generate(inspection, photos, s.store)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	ref, err := s.store.Write(CategoryReport, fmt.Sprintf("inspection_%d.pdf", id), bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("storing report: %w", err)
	}

	updated, err := s.UpdateInspection(id, InspectionUpdate{PDFPath: &ref})
	if err != nil {
		// The record never pointed at the new document; remove it so the
		// failed attempt does not leak a file.
		s.removeArtifacts([]string{ref})
		return nil, err
	}

	s.logger.Info("report generated", "inspection_id", id, "ref", ref, "bytes", len(doc))
	return updated, nil
}
