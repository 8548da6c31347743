package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndGet(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"image": "a.png", "question": "Q1", "options": ["X", "Y"]},
		{"image": "b.png", "question": "Q2", "options": ["Yes", "No", "Unsure"]}
	]`)

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	item, err := cat.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a.png", item.Image)
	assert.Equal(t, "Q1", item.Question)
	assert.Equal(t, []string{"X", "Y"}, item.Options)

	item, err = cat.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b.png", item.Image)
}

func TestGetOutOfRange(t *testing.T) {
	path := writeCatalogFile(t, `[{"image": "a.png", "question": "Q1", "options": ["X"]}]`)

	cat, err := Load(path)
	require.NoError(t, err)

	_, err = cat.Get(-1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = cat.Get(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByImage(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"image": "a.png", "question": "Q1", "options": ["X"]},
		{"image": "b.png", "question": "Q2", "options": ["Y"]}
	]`)

	cat, err := Load(path)
	require.NoError(t, err)

	item, err := cat.FindByImage("b.png")
	require.NoError(t, err)
	assert.Equal(t, "Q2", item.Question)

	_, err = cat.FindByImage("missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadAugmentedCatalog(t *testing.T) {
	path := writeCatalogFile(t, `[{
		"image": "a.png",
		"question": "Q1",
		"options": ["X"],
		"questions": [
			{"question": "Q1", "options": ["X"]},
			{"question": "what is the JNET Class seen in this image?", "options": ["Type1", "Type2A"]}
		]
	}]`)

	cat, err := Load(path)
	require.NoError(t, err)

	item, err := cat.Get(0)
	require.NoError(t, err)
	assert.Len(t, item.Questions, 2)
	assert.Equal(t, "Q1", item.Question)
}

func TestLoadRejectsItemWithoutImage(t *testing.T) {
	path := writeCatalogFile(t, `[{"question": "Q1", "options": ["X"]}]`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeCatalogFile(t, `{"not": "an array"}`)

	_, err := Load(path)
	assert.Error(t, err)
}
