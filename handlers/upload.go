package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jalad-shrimali/sector-kml/cells"
	"github.com/jalad-shrimali/sector-kml/config"
	"github.com/jalad-shrimali/sector-kml/generator"
)

const maxUpload = 64 << 20

/* ───────────── HTTP endpoint ───────────── */

// Upload accepts the 4G and 5G engineering databases as multipart files
// "file_4g" and "file_5g" and answers with the download path of the KML.
func Upload(cfg config.Config, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Only POST method allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		for _, d := range []string{cfg.UploadDir, cfg.OutputDir} {
			if err := os.MkdirAll(d, 0o755); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}

		id := uuid.New()
		src4G, status, err := saveFormFile(r, "file_4g", cfg.UploadDir, id.String()+"_4g")
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		src5G, status, err := saveFormFile(r, "file_5g", cfg.UploadDir, id.String()+"_5g")
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}

		name := outputName(r.FormValue("name"), id)
		dst := filepath.Join(cfg.OutputDir, name)
		res, err := generator.Run(r.Context(), generator.Options{
			Path4G:   src4G,
			Path5G:   src5G,
			Output:   dst,
			Database: cfg.DatabasePath,
			Config:   cfg,
			Log:      log.With("upload", id.String()),
		})
		if err != nil {
			var mfe *cells.MissingFieldError
			var ve *cells.ValueError
			if errors.As(err, &mfe) || errors.As(err, &ve) {
				http.Error(w, "generation failed: "+err.Error(), http.StatusUnprocessableEntity)
				return
			}
			log.Error("generation failed", "upload", id.String(), "err", err)
			http.Error(w, "generation failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		fmt.Fprintf(w, "KML file created: /download/%s\n", filepath.Base(res.Output))
		for _, f := range res.Folders {
			fmt.Fprintf(w, "%s\t%d sectors\t%d labels\n", f.Name, f.Polygons, f.Labels)
		}
	}
}

// outputName turns the optional user-supplied name into a bare .kml file name.
func outputName(requested string, id uuid.UUID) string {
	base := strings.TrimSpace(filepath.Base(strings.ReplaceAll(requested, `\`, "/")))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = id.String()
	}
	return base + ".kml"
}

// saveFormFile stores one uploaded file under dir, keeping its extension so
// the loader can pick the right reader.
func saveFormFile(r *http.Request, field, dir, stem string) (string, int, error) {
	file, hdr, err := r.FormFile(field)
	if err != nil {
		return "", http.StatusBadRequest, fmt.Errorf("%s: %w", field, err)
	}
	defer file.Close()

	dst := filepath.Join(dir, stem+strings.ToLower(filepath.Ext(hdr.Filename)))
	if err := saveUploaded(file, dst); err != nil {
		return "", http.StatusInternalServerError, err
	}
	return dst, 0, nil
}

func saveUploaded(src multipart.File, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, src)
	return err
}
