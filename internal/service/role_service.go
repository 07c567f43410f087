package service

import (
	"context"
	"errors"
	"fmt"
	"secure-files-server/config"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/model"
	"secure-files-server/internal/ports"
	"secure-files-server/internal/security"
	"secure-files-server/internal/util"
	"strings"

	"github.com/lib/pq"
)

type RoleService struct {
	roleRepo       ports.RoleRepository
	membershipRepo ports.MembershipRepository
	database       *config.Database
}

func NewRoleService(roleRepo ports.RoleRepository, membershipRepo ports.MembershipRepository, database *config.Database) *RoleService {
	return &RoleService{
		roleRepo:       roleRepo,
		membershipRepo: membershipRepo,
		database:       database,
	}
}

// CreateRole : регистрирует новую пользовательскую роль. Имя роли
// уникально без учёта регистра и не может совпадать с системной ролью.
func (s *RoleService) CreateRole(ctx context.Context, principal *security.Claims, roleName, displayName, description string, capabilities []string) (*model.CustomRole, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	roleName = normalizeRoleName(roleName)
	displayName = strings.TrimSpace(displayName)
	if roleName == "" || displayName == "" {
		return nil, fmt.Errorf("[RoleService] имя и отображаемое имя роли обязательны: %w", apperror.ErrValidation)
	}

	if isSystemRole(roleName) {
		return nil, fmt.Errorf("[RoleService] имя %q занято системной ролью: %w", roleName, apperror.ErrConflict)
	}

	existing, err := s.roleRepo.GetByName(ctx, s.database.DB, roleName)
	if err != nil && errors.Is(err, apperror.ErrNotFound) == false {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("[RoleService] роль %q уже существует: %w", roleName, apperror.ErrConflict)
	}

	role := &model.CustomRole{
		RoleName:     roleName,
		DisplayName:  displayName,
		Description:  description,
		Capabilities: pq.StringArray(clampCapabilities(capabilities)),
		CreatedBy:    principal.UserUUID,
		IsActive:     true,
	}

	tx, rollback, commit, err := s.roleRepo.BeginTX(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.roleRepo.Create(ctx, tx, role); err != nil {
		if rbErr := rollback(); rbErr != nil {
			util.LogError("[RoleService] ошибка отката транзакции", rbErr)
		}
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[RoleService] ошибка фиксации транзакции", err)
	}

	return role, nil
}

// UpdateRole : меняет отображаемое имя, описание и набор возможностей.
// Имя роли неизменно, на него ссылаются назначения и списки доступа.
func (s *RoleService) UpdateRole(ctx context.Context, principal *security.Claims, id int64, displayName, description string, capabilities []string) (*model.CustomRole, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("[RoleService] отображаемое имя роли обязательно: %w", apperror.ErrValidation)
	}

	role, err := s.roleRepo.GetByID(ctx, s.database.DB, id)
	if err != nil {
		return nil, err
	}

	role.DisplayName = displayName
	role.Description = description
	role.Capabilities = pq.StringArray(clampCapabilities(capabilities))

	tx, rollback, commit, err := s.roleRepo.BeginTX(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.roleRepo.Update(ctx, tx, role); err != nil {
		if rbErr := rollback(); rbErr != nil {
			util.LogError("[RoleService] ошибка отката транзакции", rbErr)
		}
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[RoleService] ошибка фиксации транзакции", err)
	}

	return role, nil
}

// DeleteRole : удаляет роль, если она никому не назначена
func (s *RoleService) DeleteRole(ctx context.Context, principal *security.Claims, id int64) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}

	role, err := s.roleRepo.GetByID(ctx, s.database.DB, id)
	if err != nil {
		return err
	}

	holders, err := s.membershipRepo.CountHolders(ctx, s.database.DB, role.RoleName)
	if err != nil {
		return err
	}
	if holders > 0 {
		return fmt.Errorf("[RoleService] роль %q назначена %d пользователям: %w", role.RoleName, holders, apperror.ErrConflict)
	}

	tx, rollback, commit, err := s.roleRepo.BeginTX(ctx)
	if err != nil {
		return err
	}

	if err := s.roleRepo.Delete(ctx, tx, id); err != nil {
		if rbErr := rollback(); rbErr != nil {
			util.LogError("[RoleService] ошибка отката транзакции", rbErr)
		}
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[RoleService] ошибка фиксации транзакции", err)
	}

	return nil
}

func (s *RoleService) ListRoles(ctx context.Context) ([]model.CustomRole, error) {
	return s.roleRepo.ListActive(ctx, s.database.DB)
}

func (s *RoleService) GetUserRoles(ctx context.Context, userUUID string) ([]string, error) {
	return s.membershipRepo.ListRoles(ctx, s.database.DB, userUUID)
}

// SetUserRoles : заменяет набор назначенных пользователю ролей.
// Назначать можно только существующие активные роли.
func (s *RoleService) SetUserRoles(ctx context.Context, principal *security.Claims, userUUID string, roles []string) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}

	active, err := s.roleRepo.ListActive(ctx, s.database.DB)
	if err != nil {
		return err
	}

	known := make(map[string]struct{}, len(active))
	for _, role := range active {
		known[role.RoleName] = struct{}{}
	}

	normalized := make([]string, 0, len(roles))
	for _, role := range roles {
		name := normalizeRoleName(role)
		if _, ok := known[name]; ok == false {
			return fmt.Errorf("[RoleService] роль %q не существует или неактивна: %w", name, apperror.ErrValidation)
		}
		normalized = append(normalized, name)
	}

	tx, rollback, commit, err := s.roleRepo.BeginTX(ctx)
	if err != nil {
		return err
	}

	if err := s.membershipRepo.SetUserRoles(ctx, tx, userUUID, normalized); err != nil {
		if rbErr := rollback(); rbErr != nil {
			util.LogError("[RoleService] ошибка отката транзакции", rbErr)
		}
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[RoleService] ошибка фиксации транзакции", err)
	}

	return nil
}

func requireAdmin(principal *security.Claims) error {
	if principal == nil {
		return fmt.Errorf("[RoleService] операция без пользователя: %w", apperror.ErrUnauthenticated)
	}
	if principal.IsAdmin == false {
		return fmt.Errorf("[RoleService] операция доступна только администратору: %w", apperror.ErrForbidden)
	}
	return nil
}

// normalizeRoleName : имя роли хранится в нижнем регистре, допустимы
// латиница, цифры, дефис и подчёркивание
func normalizeRoleName(roleName string) string {
	roleName = strings.ToLower(strings.TrimSpace(roleName))
	var b strings.Builder
	for _, r := range roleName {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSystemRole(roleName string) bool {
	for _, system := range model.SystemRoles {
		if strings.EqualFold(system, roleName) {
			return true
		}
	}
	return false
}

// clampCapabilities : роль может только просматривать и скачивать файлы,
// любые другие возможности отбрасываются. Пустой набор означает обе.
func clampCapabilities(capabilities []string) []string {
	if len(capabilities) == 0 {
		return []string{model.CapabilityView, model.CapabilityDownload}
	}

	clamped := make([]string, 0, 2)
	seen := make(map[string]struct{}, 2)
	for _, capability := range capabilities {
		capability = strings.ToLower(strings.TrimSpace(capability))
		if capability != model.CapabilityView && capability != model.CapabilityDownload {
			continue
		}
		if _, ok := seen[capability]; ok {
			continue
		}
		seen[capability] = struct{}{}
		clamped = append(clamped, capability)
	}

	if len(clamped) == 0 {
		return []string{model.CapabilityView, model.CapabilityDownload}
	}

	return clamped
}
