package inspect_test

import (
	"strings"
	"testing"

	"sitecheck/internal/inspect"
	"sitecheck/internal/testutil"
)

func TestProjectStorage(t *testing.T) {
	svc, db, store := newTestService(t)

	project := testutil.CreateProject(t, db, "Riverside Tower")
	ins := testutil.CreateInspection(t, db, project.ID)

	pdfRef, err := store.Write(inspect.CategoryReport, "report.pdf", strings.NewReader(strings.Repeat("a", 100)))
	if err != nil {
		t.Fatalf("writing report: %v", err)
	}
	if _, err := svc.UpdateInspection(ins.ID, inspect.InspectionUpdate{PDFPath: &pdfRef}); err != nil {
		t.Fatalf("attaching report: %v", err)
	}
	photo := testutil.CreatePhoto(t, db, store, ins.ID, strings.Repeat("b", 200))

	report, err := svc.ProjectStorage(project.ID)
	if err != nil {
		t.Fatalf("ProjectStorage() error = %v", err)
	}

	if report.TotalBytes != 300 {
		t.Errorf("TotalBytes = %d, want 300", report.TotalBytes)
	}
	if report.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", report.FileCount)
	}
	if report.PDFCount != 1 || report.PhotoCount != 1 {
		t.Errorf("PDFCount = %d, PhotoCount = %d, want 1 and 1", report.PDFCount, report.PhotoCount)
	}
	if len(report.Missing) != 0 {
		t.Errorf("Missing = %v, want empty", report.Missing)
	}

	t.Run("missing file excluded from totals", func(t *testing.T) {
		if err := store.Delete(photo.PhotoPath); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		report, err := svc.ProjectStorage(project.ID)
		if err != nil {
			t.Fatalf("ProjectStorage() error = %v", err)
		}
		if report.TotalBytes != 100 {
			t.Errorf("TotalBytes = %d, want 100", report.TotalBytes)
		}
		if report.FileCount != 1 {
			t.Errorf("FileCount = %d, want 1", report.FileCount)
		}
		if len(report.Missing) != 1 || report.Missing[0] != photo.PhotoPath {
			t.Errorf("Missing = %v, want [%s]", report.Missing, photo.PhotoPath)
		}
	})
}

func TestProjectStorage_EmptyProject(t *testing.T) {
	svc, db, _ := newTestService(t)

	project := testutil.CreateProject(t, db, "Greenfield")

	report, err := svc.ProjectStorage(project.ID)
	if err != nil {
		t.Fatalf("ProjectStorage() error = %v", err)
	}
	if report.TotalBytes != 0 || report.FileCount != 0 {
		t.Errorf("report = %+v, want zero usage", report)
	}
}

func TestProjectStorage_UnknownProject(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.ProjectStorage(999); !inspect.IsNotFound(err) {
		t.Fatalf("ProjectStorage(999) error = %v, want not found", err)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{5 * 1048576, "5.00 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1.00 TB"},
		{5629499534213120, "5120.00 TB"},
	}

	for _, tt := range tests {
		if got := inspect.FormatSize(tt.n); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
