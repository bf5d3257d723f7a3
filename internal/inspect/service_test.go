package inspect_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sitecheck/internal/artifact"
	"sitecheck/internal/inspect"
	"sitecheck/internal/testutil"
)

func newTestService(t *testing.T) (*inspect.Service, inspect.Database, *artifact.MemoryStore) {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	store := testutil.NewTestStore()
	return inspect.NewService(db, store, nil, nil), db, store
}

func TestProjectCRUD(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateProject(&inspect.Project{
		Name:       "Riverside Tower",
		Location:   "12 Harbor Rd",
		Contractor: "Meridian Construction",
		StartDate:  "2024-01-15",
		EndDate:    "2024-12-20",
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateProject() returned zero id")
	}

	got, err := svc.GetProject(created.ID)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("GetProject() mismatch (-want +got):\n%s", diff)
	}

	name := "Riverside Tower Phase II"
	updated, err := svc.UpdateProject(created.ID, inspect.ProjectUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if updated.Name != name {
		t.Errorf("Name = %q, want %q", updated.Name, name)
	}
	// untouched fields survive a partial update
	if updated.Contractor != created.Contractor {
		t.Errorf("Contractor = %q, want %q", updated.Contractor, created.Contractor)
	}
	if updated.StartDate != created.StartDate {
		t.Errorf("StartDate = %q, want %q", updated.StartDate, created.StartDate)
	}

	if _, err := svc.DeleteProject(created.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if _, err := svc.GetProject(created.ID); !inspect.IsNotFound(err) {
		t.Errorf("GetProject() after delete error = %v, want not found", err)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetProject(999)
	if !inspect.IsNotFound(err) {
		t.Fatalf("GetProject(999) error = %v, want not found", err)
	}
	if !strings.Contains(err.Error(), "project") {
		t.Errorf("error = %q, want it to name the entity kind", err.Error())
	}
}

func TestListProjects(t *testing.T) {
	svc, db, _ := newTestService(t)

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		testutil.CreateProject(t, db, name)
	}

	t.Run("all", func(t *testing.T) {
		projects, err := svc.ListProjects(0, 0)
		if err != nil {
			t.Fatalf("ListProjects() error = %v", err)
		}
		if len(projects) != 3 {
			t.Fatalf("len = %d, want 3", len(projects))
		}
		// ordered by id
		if projects[0].Name != "Alpha" || projects[2].Name != "Gamma" {
			t.Errorf("order = [%s %s %s], want [Alpha Beta Gamma]",
				projects[0].Name, projects[1].Name, projects[2].Name)
		}
	})

	t.Run("paged", func(t *testing.T) {
		projects, err := svc.ListProjects(1, 1)
		if err != nil {
			t.Fatalf("ListProjects() error = %v", err)
		}
		if len(projects) != 1 || projects[0].Name != "Beta" {
			t.Errorf("ListProjects(1, 1) = %v, want single Beta", projects)
		}
	})
}

func TestDeleteProject_CascadeRemovesArtifacts(t *testing.T) {
	svc, db, store := newTestService(t)

	project := testutil.CreateProject(t, db, "Riverside Tower")
	ins1 := testutil.CreateInspection(t, db, project.ID)
	ins2 := testutil.CreateInspection(t, db, project.ID)

	pdfRef, err := store.Write(inspect.CategoryReport, "report.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("writing report: %v", err)
	}
	if _, err := svc.UpdateInspection(ins1.ID, inspect.InspectionUpdate{PDFPath: &pdfRef}); err != nil {
		t.Fatalf("attaching report: %v", err)
	}

	photo1 := testutil.CreatePhoto(t, db, store, ins1.ID, "jpeg-bytes-1")
	photo2 := testutil.CreatePhoto(t, db, store, ins2.ID, "jpeg-bytes-2")

	if _, err := svc.DeleteProject(project.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}

	// rows are gone
	for _, id := range []int64{ins1.ID, ins2.ID} {
		if _, err := svc.GetInspection(id); !inspect.IsNotFound(err) {
			t.Errorf("GetInspection(%d) error = %v, want not found", id, err)
		}
	}
	for _, id := range []int64{photo1.ID, photo2.ID} {
		if _, err := svc.GetPhoto(id); !inspect.IsNotFound(err) {
			t.Errorf("GetPhoto(%d) error = %v, want not found", id, err)
		}
	}

	// artifacts are gone
	for _, ref := range []string{pdfRef, photo1.PhotoPath, photo2.PhotoPath} {
		exists, err := store.Exists(ref)
		if err != nil {
			t.Fatalf("Exists(%q) error = %v", ref, err)
		}
		if exists {
			t.Errorf("artifact %q still exists after project delete", ref)
		}
	}
}

func TestDeleteProject_ToleratesMissingArtifacts(t *testing.T) {
	svc, db, store := newTestService(t)

	project := testutil.CreateProject(t, db, "Riverside Tower")
	ins := testutil.CreateInspection(t, db, project.ID)
	photo := testutil.CreatePhoto(t, db, store, ins.ID, "jpeg-bytes")

	// the file disappears out of band
	if err := store.Delete(photo.PhotoPath); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := svc.DeleteProject(project.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v, want success despite missing file", err)
	}
}
