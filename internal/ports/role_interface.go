package ports

import (
	"context"
	"secure-files-server/internal/model"
	"secure-files-server/internal/security"

	"github.com/jmoiron/sqlx"
)

// RoleRepository : SQL слой реестра пользовательских ролей
type RoleRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, role *model.CustomRole) (int64, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.CustomRole, error)
	GetByName(ctx context.Context, exec sqlx.ExtContext, roleName string) (*model.CustomRole, error)
	ListActive(ctx context.Context, exec sqlx.ExtContext) ([]model.CustomRole, error)
	Update(ctx context.Context, exec sqlx.ExtContext, role *model.CustomRole) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// MembershipRepository : связь пользователей и пользовательских ролей
type MembershipRepository interface {
	ListRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]string, error)
	SetUserRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string, roles []string) error
	CountHolders(ctx context.Context, exec sqlx.ExtContext, roleName string) (int, error)
}

type RoleService interface {
	CreateRole(ctx context.Context, principal *security.Claims, roleName, displayName, description string, capabilities []string) (*model.CustomRole, error)
	UpdateRole(ctx context.Context, principal *security.Claims, id int64, displayName, description string, capabilities []string) (*model.CustomRole, error)
	DeleteRole(ctx context.Context, principal *security.Claims, id int64) error
	ListRoles(ctx context.Context) ([]model.CustomRole, error)
	GetUserRoles(ctx context.Context, userUUID string) ([]string, error)
	SetUserRoles(ctx context.Context, principal *security.Claims, userUUID string, roles []string) error
}
