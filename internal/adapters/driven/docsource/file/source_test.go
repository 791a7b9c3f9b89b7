package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupath/edubot/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLoad_TextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "syllabus.txt", "Week 1: limits.\nWeek 2: derivatives.")
	writeFile(t, dir, "notes.md", "# Integrals\nArea under a curve.")

	src := NewSource()
	docs, files, err := src.Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, files)
	require.Len(t, docs, 2)
	for _, doc := range docs {
		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, 1, doc.Page)
		assert.NotEmpty(t, doc.Text)
	}
}

func TestLoad_SkipsUnsupportedAndHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "visible content")
	writeFile(t, dir, "image.png", "binary junk")
	writeFile(t, dir, ".hidden.txt", "should be skipped")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0700))
	writeFile(t, filepath.Join(dir, ".git"), "config.txt", "also skipped")

	src := NewSource()
	docs, files, err := src.Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, files)
	require.Len(t, docs, 1)
	assert.Equal(t, "notes.txt", docs[0].SourceFile)
}

func TestLoad_Recursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "week1")
	require.NoError(t, os.MkdirAll(sub, 0700))
	writeFile(t, sub, "lecture.txt", "nested content")

	src := NewSource()
	docs, files, err := src.Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, files)
	require.Len(t, docs, 1)
	assert.Equal(t, "lecture.txt", docs[0].SourceFile)
}

func TestLoad_MissingDirectory(t *testing.T) {
	src := NewSource()
	_, _, err := src.Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestLoad_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file.txt", "content")

	src := NewSource()
	_, _, err := src.Load(context.Background(), filepath.Join(dir, "file.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	src := NewSource()
	_, _, err := src.Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_SkipsEmptyTextFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.txt", "   \n  ")
	writeFile(t, dir, "real.txt", "content")

	src := NewSource()
	docs, files, err := src.Load(context.Background(), dir)
	require.NoError(t, err)

	// The empty file still counts as read, but contributes no pages.
	assert.Equal(t, 2, files)
	require.Len(t, docs, 1)
	assert.Equal(t, "real.txt", docs[0].SourceFile)
}
