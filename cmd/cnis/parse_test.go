package main

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cnis-flow/internal/common"
	"github.com/Veraticus/cnis-flow/internal/model"
	"github.com/Veraticus/cnis-flow/internal/testutil"
)

func TestParseCommand_JSON(t *testing.T) {
	dir := setupTestEnv(t)
	path := writeFile(t, dir, "extrato.txt", testutil.ShortExtract)

	out, err := runCmd(t, parseCmd(), path, "--json")
	require.NoError(t, err)

	var result parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Empty(t, result.ID)
	require.Len(t, result.Extract.Bonds, 2)
	assert.Equal(t, "LABORATORIO XYZ LTDA", result.Extract.Bonds[0].OriginName)
	assert.Equal(t, model.CategoryIndividualContributor, result.Extract.Bonds[1].Category)

	// 395 days for the first bond, 91 for Jan-Mar 2016.
	assert.Equal(t, 486, result.Summary.Total.TotalDays)
	assert.Equal(t, 5, result.Summary.QualifyingMonths)
	assert.Equal(t, model.GenderMale, result.Summary.Gender)
}

func TestParseCommand_Table(t *testing.T) {
	dir := setupTestEnv(t)
	path := writeFile(t, dir, "extrato.txt", testutil.ShortExtract)

	out, err := runCmd(t, parseCmd(), path, "--gender", "female")
	require.NoError(t, err)

	assert.Contains(t, out, "MARIA DA SILVA SANTOS")
	assert.Contains(t, out, "2 bonds")
	assert.Contains(t, out, "LABORATORIO XYZ LTDA")
	assert.Contains(t, out, "486 days")
	assert.Contains(t, out, "female")
	assert.NotContains(t, out, "Saved as")
}

func TestParseCommand_Save(t *testing.T) {
	dir := setupTestEnv(t)
	path := writeFile(t, dir, "extrato.txt", testutil.ShortExtract)

	out, err := runCmd(t, parseCmd(), path, "--save", "--json")
	require.NoError(t, err)

	var result parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotEmpty(t, result.ID)

	list, err := runCmd(t, listImportsCmd())
	require.NoError(t, err)
	assert.Contains(t, list, result.ID)
	assert.Contains(t, list, "extrato.txt")
}

func TestParseCommand_Errors(t *testing.T) {
	dir := setupTestEnv(t)

	tests := []struct {
		wantErr error
		name    string
		args    []string
		errText string
	}{
		{
			name:    "unsupported format",
			args:    []string{writeFile(t, dir, "extrato.doc", testutil.ShortExtract)},
			wantErr: common.ErrUnsupportedFormat,
		},
		{
			name:    "not a cnis extract",
			args:    []string{writeFile(t, dir, "outro.txt", "Lista de compras\nleite\npão")},
			wantErr: common.ErrDocumentNotRecognized,
		},
		{
			name:    "empty file",
			args:    []string{writeFile(t, dir, "vazio.txt", "")},
			wantErr: common.ErrEmptyDocument,
		},
		{
			name:    "missing file",
			args:    []string{dir + "/nao-existe.txt"},
			wantErr: common.ErrTextExtractionFailed,
		},
		{
			name:    "invalid gender",
			args:    []string{writeFile(t, dir, "ok.txt", testutil.ShortExtract), "--gender", "other"},
			errText: "invalid gender",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, parseCmd(), tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.True(t, strings.Contains(err.Error(), tt.errText), err.Error())
			}
		})
	}
}
