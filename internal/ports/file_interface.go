package ports

import (
	"context"
	"io"
	"secure-files-server/internal/model"
	"secure-files-server/internal/security"

	"github.com/jmoiron/sqlx"
)

// FileRepository : SQL слой реестра файлов
type FileRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, file *model.SecureFile) (int64, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.SecureFile, error)
	GetByStoredName(ctx context.Context, exec sqlx.ExtContext, storedName string) (*model.SecureFile, error)
	List(ctx context.Context, exec sqlx.ExtContext, limit, offset int) ([]model.SecureFile, error)
	UpdateRoles(ctx context.Context, exec sqlx.ExtContext, id int64, roles []string) error
	UpdateDescription(ctx context.Context, exec sqlx.ExtContext, id int64, description string) error
	IncrementDownloadCount(ctx context.Context, exec sqlx.ExtContext, id int64) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// FileService : бизнес-логика загрузки, выдачи и управления файлами
type FileService interface {
	UploadFile(ctx context.Context, principal *security.Claims, declaredName string, content []byte, description string, allowedRoles []string) (*model.SecureFile, error)
	GetFile(ctx context.Context, principal *security.Claims, id int64) (*model.SecureFile, error)
	ListFiles(ctx context.Context, principal *security.Claims, limit, offset int) ([]model.SecureFile, error)
	UpdateFileRoles(ctx context.Context, principal *security.Claims, id int64, roles []string) error
	UpdateFileDescription(ctx context.Context, principal *security.Claims, id int64, description string) error
	DeleteFile(ctx context.Context, principal *security.Claims, id int64) error
	// OpenByID и OpenByStoredName выполняют полный конвейер выдачи:
	// запись → авторизация → открытие потока → инкремент счётчика (только при counted)
	OpenByID(ctx context.Context, principal *security.Claims, id int64, counted bool) (*model.SecureFile, io.ReadCloser, error)
	OpenByStoredName(ctx context.Context, principal *security.Claims, storedName string, counted bool) (*model.SecureFile, io.ReadCloser, error)
}
