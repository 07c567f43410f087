package service_test

import (
	"bytes"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/service"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadValidator_Validate(t *testing.T) {
	validator := service.NewUploadValidator(1024, []string{"pdf", "txt", "png"})

	t.Run("accepts file within limits", func(t *testing.T) {
		mimeType, err := validator.Validate("report.txt", []byte("обычный текстовый файл"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(mimeType, "text/plain"))
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		_, err := validator.Validate("big.txt", bytes.Repeat([]byte("a"), 2048))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("rejects extension outside the allow list", func(t *testing.T) {
		_, err := validator.Validate("script.exe", []byte("MZ"))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("extension check is case insensitive", func(t *testing.T) {
		_, err := validator.Validate("REPORT.TXT", []byte("text"))
		assert.NoError(t, err)
	})

	t.Run("size check runs before extension check", func(t *testing.T) {
		_, err := validator.Validate("big.exe", bytes.Repeat([]byte("a"), 2048))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "превышает предел")
	})
}

func TestUploadValidator_Defaults(t *testing.T) {
	validator := service.NewUploadValidator(0, nil)

	t.Run("empty extension list disables the filter", func(t *testing.T) {
		_, err := validator.Validate("notes.xyz", []byte("anything"))
		assert.NoError(t, err)
	})

	t.Run("default size limit applies", func(t *testing.T) {
		_, err := validator.Validate("huge.bin", make([]byte, service.DefaultMaxFileSize+1))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("content sniffing ignores declared extension", func(t *testing.T) {
		// содержимое определяется как application/octet-stream, не как текст
		mimeType, err := validator.Validate("photo.txt", []byte{0x00, 0x01, 0x02, 0x03})
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", mimeType)
	})
}
