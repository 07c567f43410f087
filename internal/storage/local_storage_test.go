package storage_test

import (
	"io"
	"os"
	"path/filepath"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/storage"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s := storage.NewLocalStorage(dir)
	require.NoError(t, s.Initialize())
	return s, dir
}

func TestLocalStorage_Initialize(t *testing.T) {
	s, dir := newTestStorage(t)

	data, err := os.ReadFile(filepath.Join(dir, ".htaccess"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Deny from all")

	_, err = os.Stat(filepath.Join(dir, "index.html"))
	assert.NoError(t, err)

	// повторная инициализация не трогает маркеры
	require.NoError(t, s.Initialize())
}

func TestLocalStorage_StoreAndOpen(t *testing.T) {
	s, dir := newTestStorage(t)

	storedName, storagePath, err := s.Store(strings.NewReader("содержимое отчёта"), "Годовой отчёт 2026.pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(storedName, ".pdf"))
	assert.NotContains(t, storedName, " ")
	assert.Equal(t, filepath.Join(dir, storedName), storagePath)

	reader, err := s.Open(storedName)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "содержимое отчёта", string(content))
}

func TestLocalStorage_UniqueNames(t *testing.T) {
	s, _ := newTestStorage(t)

	first, _, err := s.Store(strings.NewReader("a"), "report.pdf")
	require.NoError(t, err)
	second, _, err := s.Store(strings.NewReader("b"), "report.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	reader, err := s.Open(first)
	require.NoError(t, err)
	content, _ := io.ReadAll(reader)
	reader.Close()
	assert.Equal(t, "a", string(content))
}

func TestLocalStorage_StoreOpenRemove_DottedNames(t *testing.T) {
	s, _ := newTestStorage(t)

	// имена с повторяющимися точками законны при загрузке, но сохранённое
	// имя не должно содержать "..", иначе выдача и удаление его отвергнут
	for _, declared := range []string{
		"my..report.pdf",
		"отчёт...финальный.pdf",
		"..hidden.pdf",
	} {
		storedName, _, err := s.Store(strings.NewReader("x"), declared)
		require.NoError(t, err, "имя %q", declared)
		assert.NotContains(t, storedName, "..", "имя %q", declared)

		reader, err := s.Open(storedName)
		require.NoError(t, err, "имя %q", declared)
		reader.Close()

		require.NoError(t, s.Remove(storedName), "имя %q", declared)
	}
}

func TestLocalStorage_Open_RejectsTraversal(t *testing.T) {
	s, _ := newTestStorage(t)

	for _, name := range []string{
		"../etc/passwd",
		"..",
		"sub/dir.pdf",
		`sub\dir.pdf`,
		"",
	} {
		_, err := s.Open(name)
		assert.ErrorIs(t, err, apperror.ErrValidation, "имя %q должно отклоняться", name)
	}
}

func TestLocalStorage_Open_Missing(t *testing.T) {
	s, _ := newTestStorage(t)

	_, err := s.Open("ghost_12345678.pdf")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLocalStorage_Remove(t *testing.T) {
	s, dir := newTestStorage(t)

	storedName, _, err := s.Store(strings.NewReader("x"), "report.pdf")
	require.NoError(t, err)

	require.NoError(t, s.Remove(storedName))
	_, err = os.Stat(filepath.Join(dir, storedName))
	assert.True(t, os.IsNotExist(err))

	// повторное удаление не считается ошибкой
	assert.NoError(t, s.Remove(storedName))
}

func TestLocalStorage_Store_NoTempLeftovers(t *testing.T) {
	s, dir := newTestStorage(t)

	_, _, err := s.Store(strings.NewReader("x"), "report.pdf")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".upload-"), "временный файл %q остался", entry.Name())
	}
}
