package inspect

import "fmt"

// Service coordinates record mutations with artifact mutations so that
// neither is left inconsistent: records are the source of truth, artifact
// cleanup is best-effort and never rolls back a committed record change.
type Service struct {
	db      Database
	store   ArtifactStore
	reports ReportGenerator
	logger  Logger
}

// NewService creates a Service with the provided dependencies.
// reports may be nil when report generation is not needed.
func NewService(db Database, store ArtifactStore, reports ReportGenerator, logger Logger) *Service {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Service{
		db:      db,
		store:   store,
		reports: reports,
		logger:  logger,
	}
}

// CreateProject creates a new project record.
func (s *Service) CreateProject(project *Project) (*Project, error) {
	created, err := s.db.CreateProject(project)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	s.logger.Info("project created", "id", created.ID, "name", created.Name)
	return created, nil
}

// GetProject returns a project by id.
func (s *Service) GetProject(id int64) (*Project, error) {
	project, err := s.db.GetProject(id)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if project == nil {
		return nil, &NotFoundError{Kind: "project", ID: id}
	}
	return project, nil
}

// ListProjects returns projects ordered by id.
func (s *Service) ListProjects(offset, limit int) ([]*Project, error) {
	projects, err := s.db.ListProjects(offset, limit)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// UpdateProject applies a partial update to a project. Projects carry no
// artifact reference, so no cleanup is involved.
func (s *Service) UpdateProject(id int64, upd ProjectUpdate) (*Project, error) {
	updated, err := s.db.UpdateProject(id, upd)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	if updated == nil {
		return nil, &NotFoundError{Kind: "project", ID: id}
	}
	return updated, nil
}

// DeleteProject deletes a project, all its inspections and photos, and
// every artifact the subtree references. The artifact reference set is
// resolved before any row is removed, so the cascade never loses track of
// files to clean up. Row deletion commits first; a failure deleting a file
// afterwards leaves at worst an orphaned artifact and is only logged.
func (s *Service) DeleteProject(id int64) (*Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	inspections, err := s.db.ListInspections(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("resolving inspections: %w", err)
	}

	var refs []string
	for _, ins := range inspections {
		if ins.PDFPath != "" {
			refs = append(refs, ins.PDFPath)
		}
		photos, err := s.db.ListPhotos(ins.ID, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("resolving photos: %w", err)
		}
		for _, p := range photos {
			if p.PhotoPath != "" {
				refs = append(refs, p.PhotoPath)
			}
		}
	}

	deleted, err := s.db.DeleteProject(id)
	if err != nil {
		return nil, fmt.Errorf("deleting project: %w", err)
	}
	if !deleted {
		return nil, &NotFoundError{Kind: "project", ID: id}
	}

	s.removeArtifacts(refs)
	s.logger.Info("project deleted", "id", id, "artifacts", len(refs))
	return project, nil
}

// removeArtifacts deletes the given references best-effort. A missing
// artifact is a no-op; any other failure is logged and skipped because the
// owning records are already gone.
func (s *Service) removeArtifacts(refs []string) {
	for _, ref := range refs {
		if err := s.store.Delete(ref); err != nil {
			s.logger.Warn("artifact cleanup failed", "ref", ref, "error", err)
		}
	}
}
