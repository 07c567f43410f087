package requestresponse

import (
	"secure-files-server/internal/model"
	"time"
)

type CreateRoleRequest struct {
	RoleName     string   `json:"role_name"`
	DisplayName  string   `json:"display_name"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
}

type UpdateRoleRequest struct {
	DisplayName  string   `json:"display_name"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
}

type RoleView struct {
	ID           int64     `json:"id"`
	RoleName     string    `json:"role_name"`
	DisplayName  string    `json:"display_name"`
	Description  string    `json:"description"`
	Capabilities []string  `json:"capabilities"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListRolesResponse struct {
	Data  []RoleView `json:"data"`
	Count int        `json:"count"`
}

type SetUserRolesRequest struct {
	Roles []string `json:"roles"`
}

type UserRolesResponse struct {
	UserUUID string   `json:"user_uuid"`
	Roles    []string `json:"roles"`
}

func RoleViewFromModel(role *model.CustomRole) RoleView {
	return RoleView{
		ID:           role.ID,
		RoleName:     role.RoleName,
		DisplayName:  role.DisplayName,
		Description:  role.Description,
		Capabilities: append([]string{}, role.Capabilities...),
		CreatedAt:    role.CreatedAt,
	}
}
