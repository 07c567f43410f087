package util

import (
	"path/filepath"
	"strings"
)

// SanitizeFileName : приводит пользовательское имя файла к безопасному виду:
// отбрасывает компоненты пути и заменяет недопустимые символы.
// Подряд идущие точки схлопываются в одну, результат никогда не содержит "..".
// Возвращает только базовое имя без расширения.
func SanitizeFileName(declaredName string) string {
	base := filepath.Base(declaredName)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var builder strings.Builder
	prevDot := false
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			builder.WriteRune(r)
			prevDot = false
		case r == '-' || r == '_':
			builder.WriteRune(r)
			prevDot = false
		case r == '.':
			if prevDot == false {
				builder.WriteRune(r)
			}
			prevDot = true
		case r == ' ':
			builder.WriteRune('-')
			prevDot = false
		}
	}

	sanitized := strings.Trim(builder.String(), ".")
	if sanitized == "" {
		sanitized = "file"
	}
	return sanitized
}

// SafeExtension : расширение файла без точки, в нижнем регистре
func SafeExtension(declaredName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filepath.Base(declaredName)), "."))
}
