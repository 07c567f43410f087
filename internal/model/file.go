package model

import (
	"github.com/lib/pq"
	"time"
)

// SecureFile : запись о файле в защищённой директории.
// AllowedRoles — список ролей, которым разрешён доступ.
// Пустой список означает «только администраторы», а не публичный доступ.
type SecureFile struct {
	ID            int64          `db:"id" json:"id"`
	StoredName    string         `db:"stored_name" json:"stored_name"`
	OriginalName  string         `db:"original_name" json:"original_name"`
	StoragePath   string         `db:"storage_path" json:"-"`
	SizeBytes     int64          `db:"size_bytes" json:"size_bytes"`
	MimeType      string         `db:"mime_type" json:"mime_type"`
	UploadedBy    string         `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt    time.Time      `db:"uploaded_at" json:"uploaded_at"`
	AllowedRoles  pq.StringArray `db:"allowed_roles" json:"allowed_roles"`
	Description   string         `db:"description" json:"description"`
	DownloadCount int64          `db:"download_count" json:"download_count"`
}
