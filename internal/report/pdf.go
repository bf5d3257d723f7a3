// Package report renders inspection reports as PDF documents.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"sitecheck/internal/inspect"

	"github.com/go-pdf/fpdf"
)

// PDFGenerator renders an inspection and its photos into a PDF document.
// It implements inspect.ReportGenerator.
type PDFGenerator struct{}

// NewPDFGenerator creates a PDFGenerator.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

// Generate renders the report. Photos whose artifact is missing or whose
// image format cannot be determined are skipped rather than failing the
// whole document.
func (g *PDFGenerator) Generate(ins *inspect.Inspection, photos []*inspect.Photo, store inspect.ArtifactStore) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Inspection Report", true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, "Inspection Report", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	fields := []struct {
		label string
		value string
	}{
		{"Subproject", ins.SubprojectName},
		{"Form", ins.FormName},
		{"Date", ins.InspectionDate},
		{"Location", ins.Location},
		{"Timing", ins.Timing},
		{"Result", ins.Result},
	}
	for _, f := range fields {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(40, 7, f.label, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 7, f.value, "", "L", false)
	}
	if ins.Remark != "" {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(40, 7, "Remark", "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 7, ins.Remark, "", "L", false)
	}

	if len(photos) > 0 {
		doc.Ln(6)
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 9, "Site Photos", "", 1, "L", false, 0, "")
	}

	for i, photo := range photos {
		if err := g.addPhoto(doc, photo, i, store); err != nil {
			if errors.Is(err, inspect.ErrArtifactNotFound) || errors.Is(err, errUnknownImageType) {
				continue
			}
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var errUnknownImageType = errors.New("unknown image type")

func (g *PDFGenerator) addPhoto(doc *fpdf.Fpdf, photo *inspect.Photo, index int, store inspect.ArtifactStore) error {
	imageType := imageTypeForRef(photo.PhotoPath)
	if imageType == "" {
		return fmt.Errorf("%s: %w", photo.PhotoPath, errUnknownImageType)
	}

	rc, err := store.Open(photo.PhotoPath)
	if err != nil {
		return err
	}
	defer rc.Close()

	name := fmt.Sprintf("photo-%d", index)
	doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, rc)
	if doc.Err() {
		return fmt.Errorf("registering image %s: %w", photo.PhotoPath, doc.Error())
	}

	doc.ImageOptions(name, 15, doc.GetY()+4, 120, 0, true, fpdf.ImageOptions{ImageType: imageType}, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 10)
	caption := photo.Caption
	if caption == "" {
		caption = "-"
	}
	doc.MultiCell(0, 6, "Caption: "+caption, "", "L", false)
	doc.MultiCell(0, 6, "Captured: "+photo.CaptureDate, "", "L", false)
	doc.Ln(4)
	return nil
}

// imageTypeForRef derives the fpdf image type from the reference's file
// extension. Returns "" for formats fpdf cannot embed.
func imageTypeForRef(ref string) string {
	switch strings.ToLower(path.Ext(ref)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	default:
		return ""
	}
}

// Compile-time check that PDFGenerator implements inspect.ReportGenerator.
var _ inspect.ReportGenerator = (*PDFGenerator)(nil)
