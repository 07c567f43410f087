package repository

import (
	"context"
	"fmt"
	"secure-files-server/config"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/util"

	"github.com/jmoiron/sqlx"
)

// MembershipRepository хранит назначения пользовательских ролей.
// Системные роли приходят из клеймов токена и здесь не дублируются.
type MembershipRepository struct {
	*config.Database
}

func NewMembershipRepository(database *config.Database) *MembershipRepository {
	return &MembershipRepository{database}
}

// ListRoles : имена ролей, назначенных пользователю
func (r *MembershipRepository) ListRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]string, error) {
	query := `SELECT role_name FROM role_memberships WHERE user_uuid = $1 ORDER BY role_name`

	roles := []string{}
	rows, err := exec.QueryxContext(ctx, query, userUUID)
	if err != nil {
		return nil, util.LogError("[MembershipRepo] ошибка чтения ролей пользователя", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, util.LogError("[MembershipRepo] ошибка чтения строки", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
		}
		roles = append(roles, role)
	}

	return roles, nil
}

// SetUserRoles : полностью заменяет набор назначений пользователя.
// Вызывается внутри транзакции, чтобы удаление и вставка были атомарны.
func (r *MembershipRepository) SetUserRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string, roles []string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM role_memberships WHERE user_uuid = $1`, userUUID); err != nil {
		return util.LogError("[MembershipRepo] ошибка очистки назначений", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	for _, role := range roles {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO role_memberships (user_uuid, role_name) VALUES ($1, $2)`,
			userUUID, role,
		)
		if err != nil {
			return util.LogError("[MembershipRepo] ошибка вставки назначения", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
		}
	}

	return nil
}

// CountHolders : число пользователей с данной ролью, защищает удаление роли
func (r *MembershipRepository) CountHolders(ctx context.Context, exec sqlx.ExtContext, roleName string) (int, error) {
	query := `SELECT COUNT(*) FROM role_memberships WHERE role_name = $1`

	var count int
	if err := sqlx.GetContext(ctx, exec, &count, query, roleName); err != nil {
		return 0, util.LogError("[MembershipRepo] ошибка подсчёта держателей роли", fmt.Errorf("%v: %w", err, apperror.ErrPersistence))
	}

	return count, nil
}
