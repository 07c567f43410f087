package util_test

import (
	"secure-files-server/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		expected string
	}{
		{
			name:     "пробелы заменяются дефисами",
			declared: "annual report 2026.pdf",
			expected: "annual-report-2026",
		},
		{
			name:     "компоненты пути отбрасываются",
			declared: "../../etc/passwd.txt",
			expected: "passwd",
		},
		{
			name:     "повторяющиеся точки схлопываются",
			declared: "my..report.pdf",
			expected: "my.report",
		},
		{
			name:     "длинная серия точек схлопывается",
			declared: "my....v2...final.pdf",
			expected: "my.v2.final",
		},
		{
			name:     "точки по краям убираются",
			declared: "..hidden.pdf",
			expected: "hidden",
		},
		{
			name:     "пустой остаток заменяется заглушкой",
			declared: "....pdf",
			expected: "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sanitized := util.SanitizeFileName(tt.declared)
			assert.Equal(t, tt.expected, sanitized)
			assert.NotContains(t, sanitized, "..")
		})
	}
}

func TestSafeExtension(t *testing.T) {
	assert.Equal(t, "pdf", util.SafeExtension("Report.PDF"))
	assert.Equal(t, "pdf", util.SafeExtension("my..report.pdf"))
	assert.Equal(t, "", util.SafeExtension("noextension"))
}
