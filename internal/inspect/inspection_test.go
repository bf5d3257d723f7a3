package inspect_test

import (
	"strings"
	"testing"

	"sitecheck/internal/inspect"
	"sitecheck/internal/testutil"
)

func TestCreateInspection_RequiresProject(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateInspection(&inspect.Inspection{
		ProjectID:      42,
		InspectionDate: "2024-02-20",
	})
	if !inspect.IsNotFound(err) {
		t.Fatalf("CreateInspection() error = %v, want not found for missing project", err)
	}
}

func TestUpdateInspection_PartialPreservesReport(t *testing.T) {
	svc, db, store := newTestService(t)

	project := testutil.CreateProject(t, db, "Riverside Tower")
	ins := testutil.CreateInspection(t, db, project.ID)

	ref, err := store.Write(inspect.CategoryReport, "report.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("writing report: %v", err)
	}
	if _, err := svc.UpdateInspection(ins.ID, inspect.InspectionUpdate{PDFPath: &ref}); err != nil {
		t.Fatalf("attaching report: %v", err)
	}

	result := "fail"
	updated, err := svc.UpdateInspection(ins.ID, inspect.InspectionUpdate{Result: &result})
	if err != nil {
		t.Fatalf("UpdateInspection() error = %v", err)
	}

	if updated.Result != "fail" {
		t.Errorf("Result = %q, want %q", updated.Result, "fail")
	}
	if updated.PDFPath != ref {
		t.Errorf("PDFPath = %q, want preserved %q", updated.PDFPath, ref)
	}
	if exists, _ := store.Exists(ref); !exists {
		t.Error("report artifact removed by unrelated update")
	}
}

func TestUpdateInspection_ReplaceDeletesOldReport(t *testing.T) {
	svc, db, store := newTestService(t)

	project := testutil.CreateProject(t, db, "Riverside Tower")
	ins := testutil.CreateInspection(t, db, project.ID)

	oldRef, err := store.Write(inspect.CategoryReport, "old.pdf", strings.NewReader("old"))
	if err != nil {
		t.Fatalf("writing old report: %v", err)
	}
	if _, err := svc.UpdateInspection(ins.ID, inspect.InspectionUpdate{PDFPath: &oldRef}); err != nil {
		t.Fatalf("attaching old report: %v", err)
	}

	newRef, err := store.Write(inspect.CategoryReport, "new.pdf", strings.NewReader("new"))
	if err != nil {
		t.Fatalf("writing new report: %v", err)
	}
	updated, err := svc.UpdateInspection(ins.ID, inspect.InspectionUpdate{PDFPath: &newRef})
	if err != nil {
		t.Fatalf("UpdateInspection() error = %v", err)
	}

	if updated.PDFPath != newRef {
		t.Errorf("PDFPath = %q, want %q", updated.PDFPath, newRef)
	}
	if exists, _ := store.Exists(oldRef); exists {
		t.Error("old report artifact still exists after replacement")
	}
	if exists, _ := store.Exists(newRef); !exists {
		t.Error("new report artifact missing")
	}
}

func TestUpdateInspection_SameRefNotDeleted(t *testing.T) {
	svc, db, store := newTestService(t)

	project := testutil.CreateProject(t, db, "Riverside Tower")
	ins := testutil.CreateInspection(t, db, project.ID)

	ref, err := store.Write(inspect.CategoryReport, "report.pdf", strings.NewReader("doc"))
	if err != nil {
		t.Fatalf("writing report: %v", err)
	}
	if _, err := svc.UpdateInspection(ins.ID, inspect.InspectionUpdate{PDFPath: &ref}); err != nil {
		t.Fatalf("attaching report: %v", err)
	}

	// re-submitting the same ref must not delete the file
	if _, err := svc.UpdateInspection(ins.ID, inspect.InspectionUpdate{PDFPath: &ref}); err != nil {
		t.Fatalf("UpdateInspection() error = %v", err)
	}
	if exists, _ := store.Exists(ref); !exists {
		t.Error("artifact deleted although the reference did not change")
	}
}

func TestDeleteInspection_RemovesPhotosAndArtifacts(t *testing.T) {
	svc, db, store := newTestService(t)

	project := testutil.CreateProject(t, db, "Riverside Tower")
	ins := testutil.CreateInspection(t, db, project.ID)
	other := testutil.CreateInspection(t, db, project.ID)

	pdfRef, err := store.Write(inspect.CategoryReport, "report.pdf", strings.NewReader("doc"))
	if err != nil {
		t.Fatalf("writing report: %v", err)
	}
	if _, err := svc.UpdateInspection(ins.ID, inspect.InspectionUpdate{PDFPath: &pdfRef}); err != nil {
		t.Fatalf("attaching report: %v", err)
	}
	photo := testutil.CreatePhoto(t, db, store, ins.ID, "jpeg-bytes")
	otherPhoto := testutil.CreatePhoto(t, db, store, other.ID, "jpeg-bytes-2")

	if _, err := svc.DeleteInspection(ins.ID); err != nil {
		t.Fatalf("DeleteInspection() error = %v", err)
	}

	if _, err := svc.GetPhoto(photo.ID); !inspect.IsNotFound(err) {
		t.Errorf("GetPhoto() error = %v, want not found", err)
	}
	for _, ref := range []string{pdfRef, photo.PhotoPath} {
		if exists, _ := store.Exists(ref); exists {
			t.Errorf("artifact %q still exists after inspection delete", ref)
		}
	}

	// sibling inspection untouched
	if _, err := svc.GetInspection(other.ID); err != nil {
		t.Errorf("GetInspection(sibling) error = %v", err)
	}
	if exists, _ := store.Exists(otherPhoto.PhotoPath); !exists {
		t.Error("sibling photo artifact removed")
	}
}

func TestListInspections_FilterByProject(t *testing.T) {
	svc, db, _ := newTestService(t)

	p1 := testutil.CreateProject(t, db, "Alpha")
	p2 := testutil.CreateProject(t, db, "Beta")
	testutil.CreateInspection(t, db, p1.ID)
	testutil.CreateInspection(t, db, p1.ID)
	testutil.CreateInspection(t, db, p2.ID)

	filtered, err := svc.ListInspections(p1.ID, 0, 0)
	if err != nil {
		t.Fatalf("ListInspections() error = %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("filtered len = %d, want 2", len(filtered))
	}

	all, err := svc.ListInspections(0, 0, 0)
	if err != nil {
		t.Fatalf("ListInspections(0) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all len = %d, want 3", len(all))
	}
}
