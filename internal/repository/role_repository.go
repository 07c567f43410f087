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

type RoleRepository struct {
	*config.Database
}

func NewRoleRepository(database *config.Database) *RoleRepository {
	return &RoleRepository{database}
}

// Create : сохраняет новую пользовательскую роль, возвращает присвоенный id
func (r *RoleRepository) Create(ctx context.Context, exec sqlx.ExtContext, role *model.CustomRole) (int64, error) {
	query := `
		INSERT INTO custom_roles (role_name, display_name, description, capabilities, created_by, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := exec.QueryRowxContext(
		ctx,
		query,
		role.RoleName,
		role.DisplayName,
		role.Description,
		pq.Array(role.Capabilities),
		role.CreatedBy,
		role.IsActive,
	).Scan(&role.ID, &role.CreatedAt)

	if err != nil {
		// гонка двух одновременных созданий решается уникальным индексом
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, fmt.Errorf("[RoleRepo] роль %q уже существует: %w", role.RoleName, apperror.ErrConflict)
		}
		return 0, util.LogError("[RoleRepo] ошибка вставки роли", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return role.ID, nil
}

// GetByID : возвращает роль по id
func (r *RoleRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.CustomRole, error) {
	query := `
		SELECT id, role_name, display_name, description, capabilities, created_by, created_at, is_active
		FROM custom_roles
		WHERE id = $1
	`

	var role model.CustomRole
	err := sqlx.GetContext(ctx, exec, &role, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[RoleRepo] роль %d: %w", id, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[RoleRepo] ошибка чтения роли", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return &role, nil
}

// GetByName : поиск без учёта регистра, имена ролей уникальны именно так
func (r *RoleRepository) GetByName(ctx context.Context, exec sqlx.ExtContext, roleName string) (*model.CustomRole, error) {
	query := `
		SELECT id, role_name, display_name, description, capabilities, created_by, created_at, is_active
		FROM custom_roles
		WHERE LOWER(role_name) = LOWER($1)
	`

	var role model.CustomRole
	err := sqlx.GetContext(ctx, exec, &role, query, roleName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[RoleRepo] роль %q: %w", roleName, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[RoleRepo] ошибка чтения роли", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return &role, nil
}

// ListActive : все активные роли для выпадающих списков и валидации назначений
func (r *RoleRepository) ListActive(ctx context.Context, exec sqlx.ExtContext) ([]model.CustomRole, error) {
	query := `
		SELECT id, role_name, display_name, description, capabilities, created_by, created_at, is_active
		FROM custom_roles
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
	`

	roles := []model.CustomRole{}
	rows, err := exec.QueryxContext(ctx, query)
	if err != nil {
		return nil, util.LogError("[RoleRepo] ошибка получения списка ролей", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}
	defer rows.Close()

	for rows.Next() {
		var role model.CustomRole
		if err := rows.StructScan(&role); err != nil {
			return nil, util.LogError("[RoleRepo] ошибка чтения строки", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
		}
		roles = append(roles, role)
	}

	return roles, nil
}

// Update : заменяет отображаемое имя, описание и набор возможностей
func (r *RoleRepository) Update(ctx context.Context, exec sqlx.ExtContext, role *model.CustomRole) error {
	query := `
		UPDATE custom_roles
		SET display_name = $2, description = $3, capabilities = $4, is_active = $5
		WHERE id = $1
	`

	result, err := exec.ExecContext(ctx, query, role.ID, role.DisplayName, role.Description, pq.Array(role.Capabilities), role.IsActive)
	if err != nil {
		return util.LogError("[RoleRepo] ошибка обновления роли", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[RoleRepo] не удалось проверить число изменённых строк", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}
	if affected == 0 {
		return fmt.Errorf("[RoleRepo] роль %d: %w", role.ID, apperror.ErrNotFound)
	}

	return nil
}

// Delete : удаляет роль; проверка на держателей роли выполняется сервисом
func (r *RoleRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	query := `DELETE FROM custom_roles WHERE id = $1`

	result, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return util.LogError("[RoleRepo] ошибка удаления роли", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[RoleRepo] не удалось проверить число изменённых строк", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}
	if affected == 0 {
		return fmt.Errorf("[RoleRepo] роль %d: %w", id, apperror.ErrNotFound)
	}

	return nil
}

func (r *RoleRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, util.LogError("[RoleRepo] не удалось начать транзакцию", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
