package testutil

import (
	"strings"
	"testing"

	"sitecheck/internal/inspect"
)

// CreateProject inserts a project with sensible defaults.
func CreateProject(t *testing.T, db inspect.Database, name string) *inspect.Project {
	t.Helper()

	p, err := db.CreateProject(&inspect.Project{
		Name:       name,
		Location:   "12 Harbor Rd",
		Contractor: "Meridian Construction",
		StartDate:  "2024-01-15",
		EndDate:    "2024-12-20",
	})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return p
}

// CreateInspection inserts an inspection under the given project.
func CreateInspection(t *testing.T, db inspect.Database, projectID int64) *inspect.Inspection {
	t.Helper()

	i, err := db.CreateInspection(&inspect.Inspection{
		ProjectID:      projectID,
		SubprojectName: "foundation",
		FormName:       "concrete pour checklist",
		InspectionDate: "2024-02-20",
		Location:       "block A",
		Timing:         "during",
		Result:         "pass",
		Remark:         "routine check",
	})
	if err != nil {
		t.Fatalf("failed to create inspection: %v", err)
	}
	return i
}

// CreatePhoto inserts a photo row whose artifact ref is backed by content
// in the given store.
func CreatePhoto(t *testing.T, db inspect.Database, store inspect.ArtifactStore, inspectionID int64, content string) *inspect.Photo {
	t.Helper()

	ref, err := store.Write(inspect.CategoryPhoto, "site.jpg", strings.NewReader(content))
	if err != nil {
		t.Fatalf("failed to write photo artifact: %v", err)
	}

	p, err := db.CreatePhoto(&inspect.Photo{
		InspectionID: inspectionID,
		PhotoPath:    ref,
		CaptureDate:  "2024-02-20",
		Caption:      "north wall",
	})
	if err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}
	return p
}
