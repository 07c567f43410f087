package model

import (
	"github.com/lib/pq"
	"time"
)

// Capabilities, доступные пользовательским ролям.
// Роль никогда не получает права загрузки или управления файлами.
const (
	CapabilityView     = "view"
	CapabilityDownload = "download"
)

// CustomRole : пользовательская роль доступа к защищённым файлам
type CustomRole struct {
	ID           int64          `db:"id" json:"id"`
	RoleName     string         `db:"role_name" json:"role_name"`
	DisplayName  string         `db:"display_name" json:"display_name"`
	Description  string         `db:"description" json:"description"`
	Capabilities pq.StringArray `db:"capabilities" json:"capabilities"`
	CreatedBy    string         `db:"created_by" json:"created_by"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	IsActive     bool           `db:"is_active" json:"is_active"`
}

// SystemRoles : зарезервированные системные роли; имя пользовательской роли
// не может совпадать ни с одной из них
var SystemRoles = []string{
	"administrator",
	"editor",
	"author",
	"contributor",
	"subscriber",
}
