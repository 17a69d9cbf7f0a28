// Package generator wires loading, normalising, rendering and writing into
// one run.
package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jalad-shrimali/sector-kml/celldb"
	"github.com/jalad-shrimali/sector-kml/cells"
	"github.com/jalad-shrimali/sector-kml/config"
	"github.com/jalad-shrimali/sector-kml/kmlout"
	"github.com/jalad-shrimali/sector-kml/render"
	"github.com/jalad-shrimali/sector-kml/report"
	"github.com/jalad-shrimali/sector-kml/sector"
	"github.com/jalad-shrimali/sector-kml/source"
)

// Renderer builds the renderer described by cfg.
func Renderer(cfg config.Config) *render.Renderer {
	r := render.NewRenderer(sector.New(cfg.BeamwidthDeg))
	r.LineWidth = cfg.LineWidth
	r.LabelScale = cfg.LabelScale
	if cfg.DocumentName != "" {
		r.DocumentName = cfg.DocumentName
	}
	return r
}

// Generate normalises the two tables and renders them.
func Generate(fourG, fiveG *cells.Table, r *render.Renderer) (*render.Document, []cells.Record, error) {
	records, err := cells.Normalize(fourG, fiveG)
	if err != nil {
		return nil, nil, err
	}
	return r.Render(records), records, nil
}

// Options describe one run. Report and Database are optional.
type Options struct {
	Path4G   string
	Path5G   string
	Output   string
	Report   string
	Database string
	Config   config.Config
	Log      *slog.Logger
}

// Result summarises a finished run.
type Result struct {
	Output  string
	Report  string
	RunID   uuid.UUID
	Records int
	Folders []render.FolderStats
}

// Run loads both inputs, writes the KML and any side outputs.
func Run(ctx context.Context, opts Options) (Result, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	fourG, err := source.Load(opts.Path4G, source.Options{Name: cells.Schema4G.Name, Sheet: opts.Config.Sheet4G})
	if err != nil {
		return Result{}, fmt.Errorf("loading 4G database: %w", err)
	}
	fiveG, err := source.Load(opts.Path5G, source.Options{Name: cells.Schema5G.Name, Sheet: opts.Config.Sheet5G})
	if err != nil {
		return Result{}, fmt.Errorf("loading 5G database: %w", err)
	}
	log.Debug("loaded tables", "rows_4g", len(fourG.Rows), "rows_5g", len(fiveG.Rows))

	doc, records, err := Generate(fourG, fiveG, Renderer(opts.Config))
	if err != nil {
		return Result{}, err
	}
	res := Result{Output: opts.Output, Records: len(records), Folders: doc.Stats()}

	if err := kmlout.WriteFile(opts.Output, doc); err != nil {
		return Result{}, fmt.Errorf("writing KML: %w", err)
	}
	log.Info("kml written", "path", opts.Output, "records", len(records), "folders", len(doc.Folders))

	if opts.Report != "" {
		if err := report.Write(opts.Report, records, doc); err != nil {
			return Result{}, fmt.Errorf("writing report: %w", err)
		}
		res.Report = opts.Report
		log.Info("report written", "path", opts.Report)
	}

	if opts.Database != "" {
		id, err := archive(ctx, opts, records)
		if err != nil {
			return Result{}, fmt.Errorf("archiving run: %w", err)
		}
		res.RunID = id
		log.Info("run archived", "db", opts.Database, "run_id", id)
	}
	return res, nil
}

func archive(ctx context.Context, opts Options, records []cells.Record) (uuid.UUID, error) {
	store, err := celldb.Open(opts.Database)
	if err != nil {
		return uuid.Nil, err
	}
	defer store.Close()
	return store.SaveRun(ctx, celldb.Run{
		Source4G: opts.Path4G,
		Source5G: opts.Path5G,
		Output:   opts.Output,
	}, records)
}
