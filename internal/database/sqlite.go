package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sitecheck/internal/database/migrations"
	"sitecheck/internal/inspect"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the inspect.Database interface using SQLite.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteDatabase{db: db, path: path}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{db: db}
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// the record layer relies on. Exported for tools and tests.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Cascade deletes depend on foreign keys; SQLite ships with them OFF.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return db, nil
}

// Migrate brings the schema to the latest version.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	return s.db.Close()
}

// Project operations

const projectColumns = "id, name, location, contractor, start_date, end_date"

func (s *SQLiteDatabase) CreateProject(project *inspect.Project) (*inspect.Project, error) {
	res, err := s.db.Exec(
		`INSERT INTO projects (name, location, contractor, start_date, end_date) VALUES (?, ?, ?, ?, ?)`,
		project.Name, project.Location, project.Contractor, project.StartDate, project.EndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading project id: %w", err)
	}

	created := *project
	created.ID = id
	return &created, nil
}

func (s *SQLiteDatabase) GetProject(id int64) (*inspect.Project, error) {
	var p inspect.Project
	err := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Location, &p.Contractor, &p.StartDate, &p.EndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return &p, nil
}

func (s *SQLiteDatabase) ListProjects(offset, limit int) ([]*inspect.Project, error) {
	rows, err := s.db.Query(
		`SELECT `+projectColumns+` FROM projects ORDER BY id LIMIT ? OFFSET ?`,
		limitArg(limit), offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*inspect.Project
	for rows.Next() {
		var p inspect.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Contractor, &p.StartDate, &p.EndDate); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *SQLiteDatabase) UpdateProject(id int64, upd inspect.ProjectUpdate) (*inspect.Project, error) {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var p inspect.Project
	err = tx.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Location, &p.Contractor, &p.StartDate, &p.EndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	applyString(&p.Name, upd.Name)
	applyString(&p.Location, upd.Location)
	applyString(&p.Contractor, upd.Contractor)
	applyString(&p.StartDate, upd.StartDate)
	applyString(&p.EndDate, upd.EndDate)

	_, err = tx.ExecContext(ctx,
		`UPDATE projects SET name = ?, location = ?, contractor = ?, start_date = ?, end_date = ? WHERE id = ?`,
		p.Name, p.Location, p.Contractor, p.StartDate, p.EndDate, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return &p, nil
}

func (s *SQLiteDatabase) DeleteProject(id int64) (bool, error) {
	return s.deleteByID("projects", id)
}

// Inspection operations

const inspectionColumns = "id, project_id, subproject_name, form_name, inspection_date, location, timing, result, remark, pdf_path"

func (s *SQLiteDatabase) CreateInspection(inspection *inspect.Inspection) (*inspect.Inspection, error) {
	res, err := s.db.Exec(
		`INSERT INTO inspections (project_id, subproject_name, form_name, inspection_date, location, timing, result, remark, pdf_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inspection.ProjectID, inspection.SubprojectName, inspection.FormName, inspection.InspectionDate,
		inspection.Location, inspection.Timing, inspection.Result, inspection.Remark, inspection.PDFPath,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting inspection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inspection id: %w", err)
	}

	created := *inspection
	created.ID = id
	return &created, nil
}

func (s *SQLiteDatabase) GetInspection(id int64) (*inspect.Inspection, error) {
	var ins inspect.Inspection
	err := s.db.QueryRow(`SELECT `+inspectionColumns+` FROM inspections WHERE id = ?`, id).
		Scan(&ins.ID, &ins.ProjectID, &ins.SubprojectName, &ins.FormName, &ins.InspectionDate,
			&ins.Location, &ins.Timing, &ins.Result, &ins.Remark, &ins.PDFPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting inspection: %w", err)
	}
	return &ins, nil
}

func (s *SQLiteDatabase) ListInspections(projectID int64, offset, limit int) ([]*inspect.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections`
	args := []any{}
	if projectID != 0 {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limitArg(limit), offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing inspections: %w", err)
	}
	defer rows.Close()

	var inspections []*inspect.Inspection
	for rows.Next() {
		var ins inspect.Inspection
		if err := rows.Scan(&ins.ID, &ins.ProjectID, &ins.SubprojectName, &ins.FormName, &ins.InspectionDate,
			&ins.Location, &ins.Timing, &ins.Result, &ins.Remark, &ins.PDFPath); err != nil {
			return nil, fmt.Errorf("scanning inspection: %w", err)
		}
		inspections = append(inspections, &ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing inspections: %w", err)
	}
	return inspections, nil
}

func (s *SQLiteDatabase) UpdateInspection(id int64, upd inspect.InspectionUpdate) (*inspect.Inspection, error) {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var ins inspect.Inspection
	err = tx.QueryRowContext(ctx, `SELECT `+inspectionColumns+` FROM inspections WHERE id = ?`, id).
		Scan(&ins.ID, &ins.ProjectID, &ins.SubprojectName, &ins.FormName, &ins.InspectionDate,
			&ins.Location, &ins.Timing, &ins.Result, &ins.Remark, &ins.PDFPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting inspection: %w", err)
	}

	applyString(&ins.SubprojectName, upd.SubprojectName)
	applyString(&ins.FormName, upd.FormName)
	applyString(&ins.InspectionDate, upd.InspectionDate)
	applyString(&ins.Location, upd.Location)
	applyString(&ins.Timing, upd.Timing)
	applyString(&ins.Result, upd.Result)
	applyString(&ins.Remark, upd.Remark)
	applyString(&ins.PDFPath, upd.PDFPath)

	_, err = tx.ExecContext(ctx,
		`UPDATE inspections SET subproject_name = ?, form_name = ?, inspection_date = ?, location = ?,
		 timing = ?, result = ?, remark = ?, pdf_path = ? WHERE id = ?`,
		ins.SubprojectName, ins.FormName, ins.InspectionDate, ins.Location,
		ins.Timing, ins.Result, ins.Remark, ins.PDFPath, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating inspection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return &ins, nil
}

func (s *SQLiteDatabase) DeleteInspection(id int64) (bool, error) {
	return s.deleteByID("inspections", id)
}

// Photo operations

const photoColumns = "id, inspection_id, photo_path, capture_date, caption"

func (s *SQLiteDatabase) CreatePhoto(photo *inspect.Photo) (*inspect.Photo, error) {
	res, err := s.db.Exec(
		`INSERT INTO photos (inspection_id, photo_path, capture_date, caption) VALUES (?, ?, ?, ?)`,
		photo.InspectionID, photo.PhotoPath, photo.CaptureDate, photo.Caption,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting photo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading photo id: %w", err)
	}

	created := *photo
	created.ID = id
	return &created, nil
}

func (s *SQLiteDatabase) GetPhoto(id int64) (*inspect.Photo, error) {
	var p inspect.Photo
	err := s.db.QueryRow(`SELECT `+photoColumns+` FROM photos WHERE id = ?`, id).
		Scan(&p.ID, &p.InspectionID, &p.PhotoPath, &p.CaptureDate, &p.Caption)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting photo: %w", err)
	}
	return &p, nil
}

func (s *SQLiteDatabase) ListPhotos(inspectionID int64, offset, limit int) ([]*inspect.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos`
	args := []any{}
	if inspectionID != 0 {
		query += ` WHERE inspection_id = ?`
		args = append(args, inspectionID)
	}
	query += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limitArg(limit), offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	defer rows.Close()

	var photos []*inspect.Photo
	for rows.Next() {
		var p inspect.Photo
		if err := rows.Scan(&p.ID, &p.InspectionID, &p.PhotoPath, &p.CaptureDate, &p.Caption); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		photos = append(photos, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	return photos, nil
}

func (s *SQLiteDatabase) UpdatePhoto(id int64, upd inspect.PhotoUpdate) (*inspect.Photo, error) {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var p inspect.Photo
	err = tx.QueryRowContext(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = ?`, id).
		Scan(&p.ID, &p.InspectionID, &p.PhotoPath, &p.CaptureDate, &p.Caption)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting photo: %w", err)
	}

	applyString(&p.PhotoPath, upd.PhotoPath)
	applyString(&p.CaptureDate, upd.CaptureDate)
	applyString(&p.Caption, upd.Caption)

	_, err = tx.ExecContext(ctx,
		`UPDATE photos SET photo_path = ?, capture_date = ?, caption = ? WHERE id = ?`,
		p.PhotoPath, p.CaptureDate, p.Caption, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating photo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return &p, nil
}

func (s *SQLiteDatabase) DeletePhoto(id int64) (bool, error) {
	return s.deleteByID("photos", id)
}

// deleteByID removes one row and reports whether it existed. Child rows
// go with it via ON DELETE CASCADE.
func (s *SQLiteDatabase) deleteByID(table string, id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking affected rows: %w", err)
	}
	return n > 0, nil
}

// applyString overwrites dst only when the update supplied a value.
func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// limitArg maps "no limit" (<= 0) to SQLite's -1.
func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// Compile-time check that SQLiteDatabase implements inspect.Database.
var _ inspect.Database = (*SQLiteDatabase)(nil)
