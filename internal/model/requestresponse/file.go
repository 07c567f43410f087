package requestresponse

import (
	"secure-files-server/internal/model"
	"time"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ResponseMessage struct {
	Response map[string]interface{} `json:"response"`
}

// FileView : представление файла для выдачи наружу (без storage_path)
type FileView struct {
	ID            int64     `json:"id"`
	OriginalName  string    `json:"original_name"`
	StoredName    string    `json:"stored_name"`
	SizeBytes     int64     `json:"size_bytes"`
	MimeType      string    `json:"mime_type"`
	Description   string    `json:"description"`
	AllowedRoles  []string  `json:"allowed_roles"`
	DownloadCount int64     `json:"download_count"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

type UploadFileResponse struct {
	Data FileView `json:"data"`
}

type ListFilesResponse struct {
	Data   []FileView `json:"data"`
	Count  int        `json:"count"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

type UpdateFileRolesRequest struct {
	AllowedRoles []string `json:"allowed_roles"`
}

type UpdateFileDescriptionRequest struct {
	Description string `json:"description"`
}

func FileViewFromModel(file *model.SecureFile) FileView {
	return FileView{
		ID:            file.ID,
		OriginalName:  file.OriginalName,
		StoredName:    file.StoredName,
		SizeBytes:     file.SizeBytes,
		MimeType:      file.MimeType,
		Description:   file.Description,
		AllowedRoles:  append([]string{}, file.AllowedRoles...),
		DownloadCount: file.DownloadCount,
		UploadedAt:    file.UploadedAt,
	}
}
