package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"secure-files-server/config"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/model"
	"secure-files-server/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type FileRepository struct {
	*config.Database
}

func NewFileRepository(database *config.Database) *FileRepository {
	return &FileRepository{database}
}

// Create : сохраняет новую запись о файле, возвращает присвоенный id
func (r *FileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.SecureFile) (int64, error) {
	query := `
		INSERT INTO secure_files (stored_name, original_name, storage_path, size_bytes, mime_type, uploaded_by, allowed_roles, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, uploaded_at
	`

	err := exec.QueryRowxContext(
		ctx,
		query,
		file.StoredName,
		file.OriginalName,
		file.StoragePath,
		file.SizeBytes,
		file.MimeType,
		file.UploadedBy,
		pq.Array(file.AllowedRoles),
		file.Description,
	).Scan(&file.ID, &file.UploadedAt)

	if err != nil {
		return 0, util.LogError("[FileRepo] ошибка вставки записи о файле", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return file.ID, nil
}

// GetByID : возвращает запись о файле по id
func (r *FileRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.SecureFile, error) {
	query := `
		SELECT id, stored_name, original_name, storage_path, size_bytes, mime_type,
		       uploaded_by, uploaded_at, allowed_roles, description, download_count
		FROM secure_files
		WHERE id = $1
	`

	var file model.SecureFile
	err := sqlx.GetContext(ctx, exec, &file, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[FileRepo] файл %d: %w", id, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[FileRepo] ошибка чтения записи о файле", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return &file, nil
}

// GetByStoredName : используется выдачей, когда запрос ключуется именем на диске
func (r *FileRepository) GetByStoredName(ctx context.Context, exec sqlx.ExtContext, storedName string) (*model.SecureFile, error) {
	query := `
		SELECT id, stored_name, original_name, storage_path, size_bytes, mime_type,
		       uploaded_by, uploaded_at, allowed_roles, description, download_count
		FROM secure_files
		WHERE stored_name = $1
	`

	var file model.SecureFile
	err := sqlx.GetContext(ctx, exec, &file, query, storedName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[FileRepo] файл %q: %w", storedName, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[FileRepo] ошибка чтения записи о файле", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return &file, nil
}

// List : постраничный список, стабильный порядок по дате загрузки
func (r *FileRepository) List(ctx context.Context, exec sqlx.ExtContext, limit, offset int) ([]model.SecureFile, error) {
	query := `
		SELECT id, stored_name, original_name, storage_path, size_bytes, mime_type,
		       uploaded_by, uploaded_at, allowed_roles, description, download_count
		FROM secure_files
		ORDER BY uploaded_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	files := []model.SecureFile{}
	rows, err := exec.QueryxContext(ctx, query, limit, offset)
	if err != nil {
		return nil, util.LogError("[FileRepo] ошибка получения списка файлов", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}
	defer rows.Close()

	for rows.Next() {
		var file model.SecureFile
		if err := rows.StructScan(&file); err != nil {
			return nil, util.LogError("[FileRepo] ошибка чтения строки", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
		}
		files = append(files, file)
	}

	return files, nil
}

// UpdateRoles : заменяет список разрешённых ролей
func (r *FileRepository) UpdateRoles(ctx context.Context, exec sqlx.ExtContext, id int64, roles []string) error {
	query := `UPDATE secure_files SET allowed_roles = $2 WHERE id = $1`

	result, err := exec.ExecContext(ctx, query, id, pq.Array(roles))
	if err != nil {
		return util.LogError("[FileRepo] ошибка обновления ролей файла", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return requireAffected(result, fmt.Sprintf("файл %d", id))
}

// UpdateDescription : заменяет описание файла
func (r *FileRepository) UpdateDescription(ctx context.Context, exec sqlx.ExtContext, id int64, description string) error {
	query := `UPDATE secure_files SET description = $2 WHERE id = $1`

	result, err := exec.ExecContext(ctx, query, id, description)
	if err != nil {
		return util.LogError("[FileRepo] ошибка обновления описания файла", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return requireAffected(result, fmt.Sprintf("файл %d", id))
}

// IncrementDownloadCount : атомарный инкремент одним выражением,
// конкурентные скачивания не теряют обновлений
func (r *FileRepository) IncrementDownloadCount(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	query := `UPDATE secure_files SET download_count = download_count + 1 WHERE id = $1`

	result, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return util.LogError("[FileRepo] ошибка инкремента счётчика скачиваний", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return requireAffected(result, fmt.Sprintf("файл %d", id))
}

// Delete : удаляет запись о файле; факт существования определяет именно БД
func (r *FileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	query := `DELETE FROM secure_files WHERE id = $1`

	result, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return util.LogError("[FileRepo] ошибка удаления записи о файле", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return requireAffected(result, fmt.Sprintf("файл %d", id))
}

func (r *FileRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, util.LogError("[FileRepo] не удалось начать транзакцию", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

func requireAffected(result sql.Result, subject string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[FileRepo] не удалось проверить число изменённых строк", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}
	if affected == 0 {
		return fmt.Errorf("[FileRepo] %s: %w", subject, apperror.ErrNotFound)
	}
	return nil
}
