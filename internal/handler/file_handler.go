package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	requestresponse "secure-files-server/internal/model/requestresponse"
	"secure-files-server/internal/ports"
	"secure-files-server/internal/security"
	"secure-files-server/internal/service"
	"secure-files-server/internal/util"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	// запас на служебные поля multipart сверх предельного размера файла
	multipartOverhead = 1 << 20
)

type FileHandler struct {
	ports.FileService
	maxUploadBytes int64
}

func NewFileHandler(fileService ports.FileService, maxUploadBytes int64) *FileHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = service.DefaultMaxFileSize
	}
	return &FileHandler{fileService, maxUploadBytes}
}

// UploadFile godoc
// @Summary Загрузка защищённого файла
// @Description Принимает файл через multipart/form-data, проверяет размер, расширение
// и тип содержимого, сохраняет его в закрытый каталог и регистрирует в реестре.
// Доступно только администратору.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Загружаемый файл"
// @Param allowed_roles formData string false "Разрешённые роли через запятую; пустое значение означает доступ только администратору"
// @Param description formData string false "Описание файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.UploadFileResponse "Запись о загруженном файле"
// @Failure 400 {object} requestresponse.ErrorResponse "Файл не прошёл проверку"
// @Failure 403 {object} requestresponse.ErrorResponse "Недостаточно прав"
// @Failure 413 {object} requestresponse.ErrorResponse "Размер запроса превышает предел загрузки"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/files [post]
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}
	if claims.IsAdmin == false {
		util.HandleError(w, "операция доступна только администратору", http.StatusForbidden)
		return
	}

	// тело обрезается на границе: слишком большой запрос не дочитывается
	// до проверки размера в валидаторе
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			util.HandleError(w, "размер запроса превышает предел загрузки", http.StatusRequestEntityTooLarge)
			return
		}
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		util.HandleError(w, "ошибка чтения файла", http.StatusInternalServerError)
		return
	}

	allowedRoles := splitRoles(r.FormValue("allowed_roles"))
	description := r.FormValue("description")

	created, err := h.FileService.UploadFile(ctx, claims, header.Filename, content, description, allowedRoles)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.UploadFileResponse{
		Data: requestresponse.FileViewFromModel(created),
	})
}

// ListFiles godoc
// @Summary Список доступных файлов
// @Description Возвращает постраничный список файлов, отфильтрованный по ролям
// пользователя. Администратор видит все файлы.
// @Tags Files
// @Produce json
// @Param limit query int false "Размер страницы, не больше 100" default(20)
// @Param offset query int false "Смещение" default(0)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListFilesResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/files [get]
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			util.HandleError(w, "неверный формат limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			util.HandleError(w, "неверный формат offset", http.StatusBadRequest)
			return
		}
		offset = parsed
	}

	files, err := h.FileService.ListFiles(ctx, claims, limit, offset)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	views := make([]requestresponse.FileView, 0, len(files))
	for i := range files {
		views = append(views, requestresponse.FileViewFromModel(&files[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.ListFilesResponse{
		Data:   views,
		Count:  len(views),
		Limit:  limit,
		Offset: offset,
	})
}

// GetFile godoc
// @Summary Запись о файле
// @Description Возвращает метаданные файла, если он доступен пользователю
// @Tags Files
// @Produce json
// @Param file_id path int true "ID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UploadFileResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Файл недоступен пользователю"
// @Failure 404 {object} requestresponse.ErrorResponse "Файл не найден"
// @Router /api/files/{file_id} [get]
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	id, err := fileIDFromRequest(r)
	if err != nil {
		util.HandleError(w, "неверный формат ID файла", http.StatusBadRequest)
		return
	}

	file, err := h.FileService.GetFile(ctx, claims, id)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.UploadFileResponse{
		Data: requestresponse.FileViewFromModel(file),
	})
}

// UpdateFileRoles godoc
// @Summary Изменение списка разрешённых ролей
// @Description Полностью заменяет список ролей, которым доступен файл.
// Пустой список делает файл доступным только администратору.
// Доступно только администратору.
// @Tags Files
// @Accept json
// @Produce json
// @Param file_id path int true "ID файла"
// @Param request body requestresponse.UpdateFileRolesRequest true "Новый список ролей"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ResponseMessage
// @Failure 403 {object} requestresponse.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} requestresponse.ErrorResponse "Файл не найден"
// @Router /api/files/{file_id}/roles [put]
func (h *FileHandler) UpdateFileRoles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := requireAdmin(w, ctx)
	if ok == false {
		return
	}

	id, err := fileIDFromRequest(r)
	if err != nil {
		util.HandleError(w, "неверный формат ID файла", http.StatusBadRequest)
		return
	}

	var request requestresponse.UpdateFileRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}
	if request.AllowedRoles == nil {
		// отсутствие поля равносильно пустому списку: доступ только администратору
		request.AllowedRoles = []string{}
	}

	if err := h.FileService.UpdateFileRoles(ctx, claims, id, request.AllowedRoles); err != nil {
		util.HandleAppError(w, err)
		return
	}

	writeResponseMessage(w, http.StatusOK, map[string]interface{}{"updated": id})
}

// UpdateFileDescription godoc
// @Summary Изменение описания файла
// @Description Заменяет описание файла. Доступно только администратору.
// @Tags Files
// @Accept json
// @Produce json
// @Param file_id path int true "ID файла"
// @Param request body requestresponse.UpdateFileDescriptionRequest true "Новое описание"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ResponseMessage
// @Failure 403 {object} requestresponse.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} requestresponse.ErrorResponse "Файл не найден"
// @Router /api/files/{file_id}/description [put]
func (h *FileHandler) UpdateFileDescription(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := requireAdmin(w, ctx)
	if ok == false {
		return
	}

	id, err := fileIDFromRequest(r)
	if err != nil {
		util.HandleError(w, "неверный формат ID файла", http.StatusBadRequest)
		return
	}

	var request requestresponse.UpdateFileDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.FileService.UpdateFileDescription(ctx, claims, id, request.Description); err != nil {
		util.HandleAppError(w, err)
		return
	}

	writeResponseMessage(w, http.StatusOK, map[string]interface{}{"updated": id})
}

// DeleteFile godoc
// @Summary Удаление файла
// @Description Убирает файл с диска и удаляет запись из реестра.
// Доступно только администратору.
// @Tags Files
// @Produce json
// @Param file_id path int true "ID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ResponseMessage
// @Failure 403 {object} requestresponse.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} requestresponse.ErrorResponse "Файл не найден"
// @Router /api/files/{file_id} [delete]
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := requireAdmin(w, ctx)
	if ok == false {
		return
	}

	id, err := fileIDFromRequest(r)
	if err != nil {
		util.HandleError(w, "неверный формат ID файла", http.StatusBadRequest)
		return
	}

	if err := h.FileService.DeleteFile(ctx, claims, id); err != nil {
		util.HandleAppError(w, err)
		return
	}

	writeResponseMessage(w, http.StatusOK, map[string]interface{}{"deleted": id})
}

func splitRoles(raw string) []string {
	roles := []string{}
	for _, role := range strings.Split(raw, ",") {
		role = strings.TrimSpace(role)
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
