package inspect

import "fmt"

// CreatePhoto creates a photo under an existing inspection. PhotoPath is
// required: a photo record without a backing artifact is not valid.
func (s *Service) CreatePhoto(photo *Photo) (*Photo, error) {
	if photo.PhotoPath == "" {
		return nil, fmt.Errorf("photo path is required")
	}
	if _, err := s.GetInspection(photo.InspectionID); err != nil {
		return nil, err
	}

	created, err := s.db.CreatePhoto(photo)
	if err != nil {
		return nil, fmt.Errorf("creating photo: %w", err)
	}
	s.logger.Info("photo created", "id", created.ID, "inspection_id", created.InspectionID)
	return created, nil
}

// GetPhoto returns a photo by id.
func (s *Service) GetPhoto(id int64) (*Photo, error) {
	photo, err := s.db.GetPhoto(id)
	if err != nil {
		return nil, fmt.Errorf("getting photo: %w", err)
	}
	if photo == nil {
		return nil, &NotFoundError{Kind: "photo", ID: id}
	}
	return photo, nil
}

// ListPhotos returns photos ordered by id, optionally filtered by
// inspection (inspectionID 0 means all).
func (s *Service) ListPhotos(inspectionID int64, offset, limit int) ([]*Photo, error) {
	photos, err := s.db.ListPhotos(inspectionID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	return photos, nil
}

// UpdatePhoto applies a partial update. Replacing the photo reference
// deletes the previous artifact only after the record update committed.
func (s *Service) UpdatePhoto(id int64, upd PhotoUpdate) (*Photo, error) {
	if upd.PhotoPath != nil && *upd.PhotoPath == "" {
		return nil, fmt.Errorf("photo path cannot be cleared")
	}

	current, err := s.GetPhoto(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.db.UpdatePhoto(id, upd)
	if err != nil {
		return nil, fmt.Errorf("updating photo: %w", err)
	}
	if updated == nil {
		return nil, &NotFoundError{Kind: "photo", ID: id}
	}

	if current.PhotoPath != "" && current.PhotoPath != updated.PhotoPath {
		if err := s.store.Delete(current.PhotoPath); err != nil {
			s.logger.Warn("stale photo cleanup failed", "ref", current.PhotoPath, "error", err)
		}
	}
	return updated, nil
}

// DeletePhoto deletes a photo record and then its artifact. A missing
// artifact does not fail the deletion.
func (s *Service) DeletePhoto(id int64) (*Photo, error) {
	photo, err := s.GetPhoto(id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.db.DeletePhoto(id)
	if err != nil {
		return nil, fmt.Errorf("deleting photo: %w", err)
	}
	if !deleted {
		return nil, &NotFoundError{Kind: "photo", ID: id}
	}

	s.removeArtifacts([]string{photo.PhotoPath})
	s.logger.Info("photo deleted", "id", id)
	return photo, nil
}
