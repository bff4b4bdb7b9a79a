// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
	"golang.org/x/time/rate"

	"github.com/dfcamara/enuvex/internal/enuvens"
	"github.com/dfcamara/enuvex/pkg/types"
)

// Poster is the creation slice of the remote client. Satisfied by
// *enuvens.Client.
type Poster interface {
	CreatePerson(ctx context.Context, payload enuvens.CreatePayload) (int, error)
}

// RowResult records the outcome of one spreadsheet row.
type RowResult struct {
	Line    int    `json:"line" yaml:"line"`
	Name    string `json:"name" yaml:"name"`
	ID      int    `json:"id,omitempty" yaml:"id,omitempty"`
	OK      bool   `json:"ok" yaml:"ok"`
	Skipped bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary holds the upload run totals. Skipped rows (failed validation)
// count as failures but never abort the run.
type Summary struct {
	Date      time.Time   `json:"date" yaml:"date"`
	Total     int         `json:"total" yaml:"total"`
	Succeeded int         `json:"succeeded" yaml:"succeeded"`
	Failed    int         `json:"failed" yaml:"failed"`
	Results   []RowResult `json:"results" yaml:"results"`
}

// Run reads the configured spreadsheet and creates one person per row,
// paced by a rate limiter so the remote API is never flooded. It returns a
// summary and writes a YAML run log next to the input file.
func Run(ctx context.Context, api Poster, cfg types.UploadConfig, w io.Writer) (Summary, error) {
	rows, err := ReadSheet(cfg.InputFile)
	if err != nil {
		return Summary{}, err
	}
	fmt.Fprintf(w, "%d rows found in %s\n", len(rows), cfg.InputFile)

	postRate := cfg.PostRate
	if postRate <= 0 {
		postRate = 1
	}
	limiter := rate.NewLimiter(rate.Limit(postRate), 1)

	summary := Summary{Date: time.Now(), Total: len(rows)}

	for i, row := range rows {
		name := fmt.Sprintf("%s %s", row.Get(colFirstName), row.Get(colLastName))

		if err := Validate(row); err != nil {
			fmt.Fprintf(w, "skipped [%d/%d] %s: %v\n", i+1, len(rows), name, err)
			summary.Failed++
			summary.Results = append(summary.Results, RowResult{
				Line: row.Line, Name: name, Skipped: true, Error: err.Error(),
			})
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return summary, err
		}

		payload := Convert(row, cfg)
		id, err := api.CreatePerson(ctx, payload)
		if err != nil {
			fmt.Fprintf(w, "failed  [%d/%d] %s: %v\n", i+1, len(rows), name, err)
			summary.Failed++
			summary.Results = append(summary.Results, RowResult{
				Line: row.Line, Name: name, Error: err.Error(),
			})
			continue
		}

		fmt.Fprintf(w, "created [%d/%d] %s (id %d)\n", i+1, len(rows), name, id)
		summary.Succeeded++
		summary.Results = append(summary.Results, RowResult{
			Line: row.Line, Name: name, ID: id, OK: true,
		})
	}

	fmt.Fprintf(w, "\nUpload summary: %d created, %d failed (total: %d)\n",
		summary.Succeeded, summary.Failed, summary.Total)

	if err := writeLog(summary, filepath.Dir(cfg.InputFile)); err != nil {
		fmt.Fprintf(w, "warning: run log write failed: %v\n", err)
	}
	return summary, nil
}

// writeLog writes the run summary as a timestamped YAML file next to the
// input spreadsheet.
func writeLog(summary Summary, dir string) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling run log: %w", err)
	}
	name := fmt.Sprintf("upload-log-%s.yaml", summary.Date.Format("20060102-150405"))
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}
