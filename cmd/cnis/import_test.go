package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cnis-flow/internal/common"
	"github.com/Veraticus/cnis-flow/internal/model"
	"github.com/Veraticus/cnis-flow/internal/testutil"
)

func TestImportCommand(t *testing.T) {
	dir := setupTestEnv(t)
	first := writeFile(t, dir, "a.txt", testutil.ShortExtract)
	second := writeFile(t, dir, "b.txt", testutil.ShortExtract)
	bad := writeFile(t, dir, "c.txt", "nada aqui")

	out, err := runCmd(t, importCmd(), first, bad, second, "--gender", "female")
	require.NoError(t, err)

	assert.Contains(t, out, "Imported 2 of 3 files")
	assert.Contains(t, out, "c.txt")

	store, err := initStorage(context.Background())
	require.NoError(t, err)
	defer store.Close()

	imports, err := store.ListImports(context.Background())
	require.NoError(t, err)
	require.Len(t, imports, 2)

	imp, err := store.GetImport(context.Background(), imports[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.GenderFemale, imp.Gender)
	assert.Len(t, imp.Extract.Bonds, 2)
}

func TestImportCommand_AllFail(t *testing.T) {
	dir := setupTestEnv(t)
	bad := writeFile(t, dir, "c.txt", "nada aqui")

	_, err := runCmd(t, importCmd(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files were imported")
}

func TestImporter_StopsOnCanceledContext(t *testing.T) {
	dir := setupTestEnv(t)
	path := writeFile(t, dir, "a.txt", testutil.ShortExtract)

	store, err := initStorage(context.Background())
	require.NoError(t, err)
	defer store.Close()

	parser, err := newParser()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := importCmd()
	imp := &importer{store: store, extractor: fakeExtractor{text: testutil.ShortExtract}, parser: parser}
	result := imp.run(ctx, cmd, []string{path, path}, model.GenderMale)

	assert.Empty(t, result.saved)
	assert.Empty(t, result.failed)
}

func TestImporter_ImportFile(t *testing.T) {
	setupTestEnv(t)

	store, err := initStorage(context.Background())
	require.NoError(t, err)
	defer store.Close()

	parser, err := newParser()
	require.NoError(t, err)

	imp := &importer{store: store, extractor: fakeExtractor{text: testutil.ShortExtract}, parser: parser}
	id, err := imp.importFile(context.Background(), "scan.pdf", model.GenderMale)
	require.NoError(t, err)

	saved, err := store.GetImport(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "scan.pdf", saved.SourceFile)

	imp.extractor = fakeExtractor{err: common.ErrTextExtractionFailed}
	_, err = imp.importFile(context.Background(), "broken.pdf", model.GenderMale)
	assert.ErrorIs(t, err, common.ErrTextExtractionFailed)
}

type fakeExtractor struct {
	err  error
	text string
}

func (f fakeExtractor) ExtractText(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}
