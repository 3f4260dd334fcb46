package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "/cars/")

	url, err := store.Save("fortuner.PNG", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/cars/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "/cars/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestSaveUniqueNames(t *testing.T) {
	store := NewFileStore(t.TempDir(), "/cars")

	first, err := store.Save("car.png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save("car.png", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSaveRejectsMissingExtension(t *testing.T) {
	store := NewFileStore(t.TempDir(), "/cars")

	_, err := store.Save("noext", strings.NewReader("a"))
	assert.Error(t, err)
}
