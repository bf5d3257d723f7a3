package inspect

// Project is a construction project. It owns zero or more Inspections.
// Dates are stored as YYYY-MM-DD strings.
type Project struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Contractor string `json:"contractor"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// Inspection is a site inspection belonging to exactly one Project.
// PDFPath references the generated or uploaded report artifact; empty
// means no report exists.
type Inspection struct {
	ID             int64  `json:"id"`
	ProjectID      int64  `json:"project_id"`
	SubprojectName string `json:"subproject_name"`
	FormName       string `json:"form_name"`
	InspectionDate string `json:"inspection_date"`
	Location       string `json:"location"`
	Timing         string `json:"timing"`
	Result         string `json:"result"`
	Remark         string `json:"remark"`
	PDFPath        string `json:"pdf_path"`
}

// Photo is a site photo belonging to exactly one Inspection.
// PhotoPath is required: a photo record without a backing artifact is invalid.
type Photo struct {
	ID           int64  `json:"id"`
	InspectionID int64  `json:"inspection_id"`
	PhotoPath    string `json:"photo_path"`
	CaptureDate  string `json:"capture_date"`
	Caption      string `json:"caption"`
}

// ProjectUpdate carries a partial update. Nil fields keep their stored value.
type ProjectUpdate struct {
	Name       *string `json:"name"`
	Location   *string `json:"location"`
	Contractor *string `json:"contractor"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

// InspectionUpdate carries a partial update. Nil fields keep their stored
// value; in particular a nil PDFPath never clears an attached report.
type InspectionUpdate struct {
	SubprojectName *string `json:"subproject_name"`
	FormName       *string `json:"form_name"`
	InspectionDate *string `json:"inspection_date"`
	Location       *string `json:"location"`
	Timing         *string `json:"timing"`
	Result         *string `json:"result"`
	Remark         *string `json:"remark"`
	PDFPath        *string `json:"pdf_path"`
}

// PhotoUpdate carries a partial update. Nil fields keep their stored value.
type PhotoUpdate struct {
	PhotoPath   *string `json:"photo_path"`
	CaptureDate *string `json:"capture_date"`
	Caption     *string `json:"caption"`
}
