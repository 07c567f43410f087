package ports

import (
	"context"
	"secure-files-server/internal/model"
)

// CacheRepository : Redis слой. Кэшируются только метаданные файлов,
// само решение о доступе никогда не кэшируется.
type CacheRepository interface {
	SetFile(ctx context.Context, file *model.SecureFile) error
	GetFileByID(ctx context.Context, id int64) (*model.SecureFile, error)
	GetFileByStoredName(ctx context.Context, storedName string) (*model.SecureFile, error)
	DeleteFile(ctx context.Context, id int64, storedName string) error
}
