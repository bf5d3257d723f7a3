package inspect

import (
	"errors"
	"fmt"
)

// FileUsage describes one live artifact counted by ProjectStorage.
type FileUsage struct {
	Ref       string `json:"ref"`
	Kind      string `json:"kind"` // "pdf" or "photo"
	SizeBytes int64  `json:"size_bytes"`
}

// StorageReport aggregates artifact usage under one project.
type StorageReport struct {
	ProjectID  int64       `json:"project_id"`
	TotalBytes int64       `json:"total_bytes"`
	FileCount  int         `json:"file_count"`
	PDFCount   int         `json:"pdf_count"`
	PhotoCount int         `json:"photo_count"`
	Files      []FileUsage `json:"files"`
	Missing    []string    `json:"missing,omitempty"`
}

// ProjectStorage walks Project -> Inspections -> Photos and sums the sizes
// of every artifact reference that currently resolves. References that do
// not resolve are reported under Missing and excluded from the counts;
// they never fail the accounting. Read-only.
func (s *Service) ProjectStorage(projectID int64) (*StorageReport, error) {
	if _, err := s.GetProject(projectID); err != nil {
		return nil, err
	}

	report := &StorageReport{ProjectID: projectID}

	inspections, err := s.db.ListInspections(projectID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("resolving inspections: %w", err)
	}

	for _, ins := range inspections {
		if ins.PDFPath != "" {
			s.countArtifact(report, ins.PDFPath, "pdf")
		}
		photos, err := s.db.ListPhotos(ins.ID, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("resolving photos: %w", err)
		}
		for _, p := range photos {
			if p.PhotoPath != "" {
				s.countArtifact(report, p.PhotoPath, "photo")
			}
		}
	}

	return report, nil
}

func (s *Service) countArtifact(report *StorageReport, ref, kind string) {
	size, err := s.store.Size(ref)
	if err != nil {
		if !errors.Is(err, ErrArtifactNotFound) {
			s.logger.Warn("artifact size lookup failed", "ref", ref, "error", err)
		}
		report.Missing = append(report.Missing, ref)
		return
	}

	report.TotalBytes += size
	report.FileCount++
	switch kind {
	case "pdf":
		report.PDFCount++
	case "photo":
		report.PhotoCount++
	}
	report.Files = append(report.Files, FileUsage{Ref: ref, Kind: kind, SizeBytes: size})
}

// FormatSize converts a raw byte count to a human-readable magnitude by
// repeated division by 1024. Bytes are reported without decimals, larger
// units with two.
func FormatSize(n int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(n)
	idx := 0
	for value >= 1024 && idx < len(units)-1 {
		value /= 1024
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.2f %s", value, units[idx])
}
