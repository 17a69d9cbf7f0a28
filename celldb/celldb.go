// Package celldb archives generated runs and their cells in SQLite.
package celldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jalad-shrimali/sector-kml/cells"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,
    source_4g  TEXT NOT NULL,
    source_5g  TEXT NOT NULL,
    output     TEXT NOT NULL,
    cells      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS cells (
    run_id      TEXT NOT NULL REFERENCES runs(id),
    source      TEXT NOT NULL,
    row_no      INTEGER NOT NULL,
    site_name   TEXT NOT NULL,
    site_id     TEXT NOT NULL,
    cell_id     TEXT NOT NULL,
    cell_name   TEXT NOT NULL,
    longitude   REAL NOT NULL,
    latitude    REAL NOT NULL,
    pci         TEXT NOT NULL,
    earfcn      INTEGER NOT NULL,
    freq_band   TEXT NOT NULL,
    height      REAL NOT NULL,
    azimuth     REAL NOT NULL,
    mtilt       REAL NOT NULL,
    etilt       REAL NOT NULL,
    oam_ip      TEXT NOT NULL,
    site_type   TEXT NOT NULL,
    radius      REAL,
    color       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS cells_cell_id ON cells(cell_id);
`

// Store is an open archive.
type Store struct {
	db *sql.DB
}

// Run describes one generation.
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Source4G  string
	Source5G  string
	Output    string
	Cells     int
}

// Open opens (and if needed creates) the archive at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("cannot open cell DB at %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema in %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun stores run and its records in one transaction. A zero run ID is
// replaced with a new random one, which is returned.
func (s *Store) SaveRun(ctx context.Context, run Run, records []cells.Record) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.Cells = len(records)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source_4g, source_5g, output, cells) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.CreatedAt.UnixNano(), run.Source4G, run.Source5G, run.Output, run.Cells,
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO cells (run_id, source, row_no, site_name, site_id, cell_id, cell_name,
                           longitude, latitude, pci, earfcn, freq_band, height, azimuth,
                           mtilt, etilt, oam_ip, site_type, radius, color)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer stmt.Close()

	for _, r := range records {
		var radius sql.NullFloat64
		if r.RadiusM != nil {
			radius = sql.NullFloat64{Float64: *r.RadiusM, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			run.ID.String(), r.Source, r.Row, r.SiteName, r.SiteID, r.CellID, r.CellName,
			r.Longitude, r.Latitude, r.PCI, r.EARFCN, r.FreqBand, r.HeightM, r.AzimuthDeg,
			r.MechanicalTiltDeg, r.ElectricalTiltDeg, r.OAMIP, r.SiteType.String(), radius, r.ColorName,
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert cell %s row %d: %w", r.Source, r.Row, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return run.ID, nil
}

// LookupCell returns the most recently archived record for a cell id. Ids
// match with or without hyphens.
func (s *Store) LookupCell(ctx context.Context, id string) (cells.Record, bool, error) {
	const q = `
        SELECT c.source, c.row_no, c.site_name, c.site_id, c.cell_id, c.cell_name,
               c.longitude, c.latitude, c.pci, c.earfcn, c.freq_band, c.height, c.azimuth,
               c.mtilt, c.etilt, c.oam_ip, c.site_type, c.radius, c.color
          FROM cells c JOIN runs r ON r.id = c.run_id
         WHERE c.cell_id = ? OR REPLACE(c.cell_id, '-', '') = ?
         ORDER BY r.created_at DESC, c.rowid DESC
         LIMIT 1`

	id = strings.TrimSpace(id)
	var (
		rec      cells.Record
		siteType string
		radius   sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, q, id, strings.ReplaceAll(id, "-", "")).Scan(
		&rec.Source, &rec.Row, &rec.SiteName, &rec.SiteID, &rec.CellID, &rec.CellName,
		&rec.Longitude, &rec.Latitude, &rec.PCI, &rec.EARFCN, &rec.FreqBand, &rec.HeightM, &rec.AzimuthDeg,
		&rec.MechanicalTiltDeg, &rec.ElectricalTiltDeg, &rec.OAMIP, &siteType, &radius, &rec.ColorName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return cells.Record{}, false, nil
	}
	if err != nil {
		return cells.Record{}, false, err
	}
	rec.SiteType = cells.ParseSiteType(siteType)
	if radius.Valid {
		r := radius.Float64
		rec.RadiusM = &r
	}
	return rec, true, nil
}

// Runs lists archived runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source_4g, source_5g, output, cells FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run Run
			id  string
			ts  int64
		)
		if err := rows.Scan(&id, &ts, &run.Source4G, &run.Source5G, &run.Output, &run.Cells); err != nil {
			return nil, err
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("run id %q: %w", id, err)
		}
		run.CreatedAt = time.Unix(0, ts)
		out = append(out, run)
	}
	return out, rows.Err()
}
