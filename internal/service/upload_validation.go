package service

import (
	"fmt"
	"net/http"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/util"
	"strings"
)

// DefaultMaxFileSize : предел размера загрузки, если он не задан в конфигурации
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// DefaultAllowedExtensions : расширения, принимаемые по умолчанию
var DefaultAllowedExtensions = []string{"pdf", "doc", "docx", "txt", "jpg", "jpeg", "png", "gif"}

// dangerousMimeTypes : типы содержимого, которые отклоняются всегда,
// независимо от списка разрешённых расширений
var dangerousMimeTypes = map[string]struct{}{
	"application/x-php":              {},
	"application/x-httpd-php":        {},
	"application/x-httpd-php-source": {},
	"text/x-php":                     {},
	"application/x-executable":       {},
	"application/x-msdownload":       {},
	"application/x-sh":               {},
	"application/x-dosexec":          {},
}

// UploadValidator проверяет загружаемый файл до записи на диск.
// Порядок проверок фиксированный: размер, расширение, тип содержимого.
type UploadValidator struct {
	maxFileSize       int64
	allowedExtensions map[string]struct{}
}

func NewUploadValidator(maxFileSize int64, allowedExtensions []string) *UploadValidator {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	extensions := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &UploadValidator{
		maxFileSize:       maxFileSize,
		allowedExtensions: extensions,
	}
}

// Validate : возвращает определённый по содержимому MIME-тип, если файл
// проходит все проверки. Тип определяется по первым байтам содержимого,
// заявленному клиентом типу доверять нельзя.
func (v *UploadValidator) Validate(declaredName string, content []byte) (string, error) {
	if int64(len(content)) > v.maxFileSize {
		return "", fmt.Errorf("[UploadValidator] файл превышает предел %d байт: %w", v.maxFileSize, apperror.ErrValidation)
	}

	// пустой список означает отсутствие фильтра по расширению
	if len(v.allowedExtensions) > 0 {
		ext := util.SafeExtension(declaredName)
		if _, ok := v.allowedExtensions[ext]; ok == false {
			return "", fmt.Errorf("[UploadValidator] расширение %q не входит в список разрешённых: %w", ext, apperror.ErrValidation)
		}
	}

	mimeType := http.DetectContentType(content)
	base := mimeType
	if idx := strings.Index(base, ";"); idx >= 0 {
		base = strings.TrimSpace(base[:idx])
	}
	if _, ok := dangerousMimeTypes[base]; ok {
		return "", fmt.Errorf("[UploadValidator] тип содержимого %q запрещён: %w", base, apperror.ErrValidation)
	}

	return mimeType, nil
}
