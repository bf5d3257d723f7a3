package inspect

// Database provides an interface for record storage operations.
// Get and Update return (nil, nil) when the id does not resolve; Delete
// returns (false, nil). The Service maps those to NotFoundError so raw
// store errors never reach callers.
//
// List operations order by id ascending. A limit <= 0 means no limit.
// A parent filter of 0 means unfiltered.
type Database interface {
	// Project operations

	CreateProject(project *Project) (*Project, error)
	GetProject(id int64) (*Project, error)
	ListProjects(offset, limit int) ([]*Project, error)
	// UpdateProject applies the non-nil fields of upd inside one transaction.
	UpdateProject(id int64, upd ProjectUpdate) (*Project, error)
	// DeleteProject removes the project row. Child inspections and photos
	// are removed by the store's ON DELETE CASCADE.
	DeleteProject(id int64) (bool, error)

	// Inspection operations

	CreateInspection(inspection *Inspection) (*Inspection, error)
	GetInspection(id int64) (*Inspection, error)
	ListInspections(projectID int64, offset, limit int) ([]*Inspection, error)
	UpdateInspection(id int64, upd InspectionUpdate) (*Inspection, error)
	DeleteInspection(id int64) (bool, error)

	// Photo operations

	CreatePhoto(photo *Photo) (*Photo, error)
	GetPhoto(id int64) (*Photo, error)
	ListPhotos(inspectionID int64, offset, limit int) ([]*Photo, error)
	UpdatePhoto(id int64, upd PhotoUpdate) (*Photo, error)
	DeletePhoto(id int64) (bool, error)

	// Migrate brings the schema to the latest version.
	Migrate() error

	// Close closes the database connection.
	Close() error
}
