// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dfcamara/enuvex/internal/enuvens"
	"github.com/dfcamara/enuvex/pkg/types"
)

// writeSheet builds an xlsx fixture in dir and returns its path.
func writeSheet(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, cells := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
	}
	path := filepath.Join(dir, "members.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadSheet(t *testing.T) {
	path := writeSheet(t, t.TempDir(), [][]any{
		{"Nome", "Sobrenome", "CPF"},
		{"Ana", "Silva", "11122233344"},
		{"", "", ""},
		{"Bia", "Costa", "22233344455"},
	})

	rows, err := ReadSheet(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Headers are lowercased and cells trimmed on access.
	assert.Equal(t, "Ana", rows[0].Get("nome"))
	assert.Equal(t, "11122233344", rows[0].Get("cpf"))
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Bia", rows[1].Get("nome"))
	assert.Equal(t, 4, rows[1].Line)
}

func TestReadSheet_NoDataRows(t *testing.T) {
	path := writeSheet(t, t.TempDir(), [][]any{
		{"Nome", "Sobrenome", "CPF"},
	})
	_, err := ReadSheet(path)
	assert.Error(t, err)
}

func TestReadSheet_MissingFile(t *testing.T) {
	_, err := ReadSheet(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

type fakePoster struct {
	calls    int
	failName string
	lastID   int
}

func (f *fakePoster) CreatePerson(_ context.Context, p enuvens.CreatePayload) (int, error) {
	f.calls++
	if p.FirstName == f.failName {
		return 0, errors.New("duplicate cpf")
	}
	f.lastID++
	return f.lastID, nil
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, [][]any{
		{"nome", "sobrenome", "cpf"},
		{"Ana", "Silva", "11122233344"},
		{"Bia", "Costa", "22233344455"},
		{"SemCPF", "Souza", ""},
	})

	poster := &fakePoster{failName: "Bia"}
	var out bytes.Buffer

	summary, err := Run(context.Background(), poster, types.UploadConfig{
		InputFile: path,
		PostRate:  1000,
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
	require.Len(t, summary.Results, 3)

	assert.True(t, summary.Results[0].OK)
	assert.Equal(t, 1, summary.Results[0].ID)
	assert.False(t, summary.Results[1].OK)
	assert.Contains(t, summary.Results[1].Error, "duplicate cpf")
	assert.True(t, summary.Results[2].Skipped)

	// The invalid row never reached the API.
	assert.Equal(t, 2, poster.calls)

	assert.Contains(t, out.String(), "created [1/3]")
	assert.Contains(t, out.String(), "failed  [2/3]")
	assert.Contains(t, out.String(), "skipped [3/3]")

	// The YAML run log lands next to the input spreadsheet.
	logs, err := filepath.Glob(filepath.Join(dir, "upload-log-*.yaml"))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestRun_MissingInput(t *testing.T) {
	_, err := Run(context.Background(), &fakePoster{}, types.UploadConfig{
		InputFile: filepath.Join(t.TempDir(), "nope.xlsx"),
	}, &bytes.Buffer{})
	assert.Error(t, err)
}
