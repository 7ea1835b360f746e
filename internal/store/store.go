// Package store keeps the workspace catalog: which models exist and which
// package files have been generated for each, so CLI commands can rebuild a
// model's name file and report on a workspace without re-parsing its files.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Catalog errors.
var (
	ErrNotFound      = errors.New("not found in catalog")
	ErrDuplicateName = errors.New("model name already in catalog")
	ErrUnitTaken     = errors.New("file unit already recorded for model")
	ErrInvalidModel  = errors.New("invalid model")
)

// Model is a catalog row describing a simulation model.
type Model struct {
	ModelID    string
	Name       string
	Workspace  string
	Nper       int
	Structured bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PackageFile is a catalog row describing one generated package file.
type PackageFile struct {
	PackageID string
	ModelID   string
	FType     string
	Unit      int
	Path      string
	CreatedAt time.Time
}

// Store wraps the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the catalog database at path and
// applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing catalog schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateModel inserts a model row and returns its generated ID.
func (s *Store) CreateModel(m Model) (string, error) {
	if m.Name == "" {
		return "", fmt.Errorf("%w: name must not be empty", ErrInvalidModel)
	}
	if m.Nper <= 0 {
		return "", fmt.Errorf("%w: nper must be positive (got %d)", ErrInvalidModel, m.Nper)
	}

	var exists int
	err := s.db.QueryRow("SELECT 1 FROM models WHERE name = ?", m.Name).Scan(&exists)
	if err == nil {
		return "", fmt.Errorf("%w: %s", ErrDuplicateName, m.Name)
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("checking model name: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating model ID: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		"INSERT INTO models (model_id, name, workspace, nper, structured, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id.String(), m.Name, m.Workspace, m.Nper, boolToInt(m.Structured), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("inserting model %s: %w", m.Name, err)
	}
	return id.String(), nil
}

// GetModel returns the model with the given name.
func (s *Store) GetModel(name string) (*Model, error) {
	row := s.db.QueryRow(
		"SELECT model_id, name, workspace, nper, structured, created_at, updated_at FROM models WHERE name = ?",
		name,
	)
	m, err := scanModel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("model %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("getting model %s: %w", name, err)
	}
	return m, nil
}

// ListModels returns every catalog model ordered by name.
func (s *Store) ListModels() ([]Model, error) {
	rows, err := s.db.Query(
		"SELECT model_id, name, workspace, nper, structured, created_at, updated_at FROM models ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer rows.Close()

	var models []Model
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning model: %w", err)
		}
		models = append(models, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	return models, nil
}

// DeleteModel removes a model and its package rows.
func (s *Store) DeleteModel(name string) error {
	m, err := s.GetModel(name)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM packages WHERE model_id = ?", m.ModelID); err != nil {
		return fmt.Errorf("deleting packages of %s: %w", name, err)
	}
	if _, err := tx.Exec("DELETE FROM models WHERE model_id = ?", m.ModelID); err != nil {
		return fmt.Errorf("deleting model %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete of %s: %w", name, err)
	}
	return nil
}

// RecordPackage upserts the package row for (model, ftype). Regenerating a
// package replaces its earlier row; a unit held by a different package type
// within the same model is rejected with ErrUnitTaken.
func (s *Store) RecordPackage(modelID, ftype string, unit int, path string) (string, error) {
	var holder string
	err := s.db.QueryRow(
		"SELECT ftype FROM packages WHERE model_id = ? AND unit = ? AND ftype != ?",
		modelID, unit, ftype,
	).Scan(&holder)
	if err == nil {
		return "", fmt.Errorf("%w: unit %d held by %s", ErrUnitTaken, unit, holder)
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("checking unit %d: %w", unit, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	var existingID string
	err = s.db.QueryRow(
		"SELECT package_id FROM packages WHERE model_id = ? AND ftype = ?",
		modelID, ftype,
	).Scan(&existingID)
	switch {
	case err == nil:
		_, err = s.db.Exec(
			"UPDATE packages SET unit = ?, path = ?, created_at = ? WHERE package_id = ?",
			unit, path, now, existingID,
		)
		if err != nil {
			return "", fmt.Errorf("updating package %s: %w", ftype, err)
		}
		return existingID, nil
	case err == sql.ErrNoRows:
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating package ID: %w", err)
		}
		_, err = s.db.Exec(
			"INSERT INTO packages (package_id, model_id, ftype, unit, path, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			id.String(), modelID, ftype, unit, path, now,
		)
		if err != nil {
			return "", fmt.Errorf("inserting package %s: %w", ftype, err)
		}
		return id.String(), nil
	default:
		return "", fmt.Errorf("checking package %s: %w", ftype, err)
	}
}

// ListPackages returns a model's package rows ordered by unit.
func (s *Store) ListPackages(modelID string) ([]PackageFile, error) {
	rows, err := s.db.Query(
		"SELECT package_id, model_id, ftype, unit, path, created_at FROM packages WHERE model_id = ? ORDER BY unit",
		modelID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	defer rows.Close()

	var pkgs []PackageFile
	for rows.Next() {
		var p PackageFile
		var createdAt string
		if err := rows.Scan(&p.PackageID, &p.ModelID, &p.FType, &p.Unit, &p.Path, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning package: %w", err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		pkgs = append(pkgs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	return pkgs, nil
}

// scanner abstracts sql.Row and sql.Rows for scanModel.
type scanner interface {
	Scan(dest ...any) error
}

func scanModel(row scanner) (*Model, error) {
	var m Model
	var structured int
	var createdAt, updatedAt string
	if err := row.Scan(&m.ModelID, &m.Name, &m.Workspace, &m.Nper, &structured, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	m.Structured = structured != 0
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &m, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
