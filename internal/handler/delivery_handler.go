package handler

import (
	"fmt"
	"io"
	"net/http"
	"secure-files-server/internal/model"
	"secure-files-server/internal/ports"
	"secure-files-server/internal/security"
	"secure-files-server/internal/util"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// DeliveryHandler отдаёт содержимое файлов. Единственный путь к содержимому:
// прямых ссылок в закрытый каталог нет.
type DeliveryHandler struct {
	ports.FileService
}

func NewDeliveryHandler(fileService ports.FileService) *DeliveryHandler {
	return &DeliveryHandler{fileService}
}

// DownloadFile godoc
// @Summary Скачивание файла
// @Description Отдаёт содержимое файла как вложение и увеличивает счётчик
// скачиваний. Доступ проверяется по ролям пользователя на каждый запрос.
// @Tags Delivery
// @Produce octet-stream
// @Param file_id path int true "ID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {file} binary "Содержимое файла"
// @Failure 403 {object} requestresponse.ErrorResponse "Файл недоступен пользователю"
// @Failure 404 {object} requestresponse.ErrorResponse "Файл не найден"
// @Router /api/files/{file_id}/download [get]
func (h *DeliveryHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	h.deliverByID(w, r, true)
}

// ViewFile godoc
// @Summary Просмотр файла
// @Description Отдаёт содержимое файла для отображения в браузере.
// Счётчик скачиваний не меняется.
// @Tags Delivery
// @Produce octet-stream
// @Param file_id path int true "ID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {file} binary "Содержимое файла"
// @Failure 403 {object} requestresponse.ErrorResponse "Файл недоступен пользователю"
// @Failure 404 {object} requestresponse.ErrorResponse "Файл не найден"
// @Router /api/files/{file_id}/view [get]
func (h *DeliveryHandler) ViewFile(w http.ResponseWriter, r *http.Request) {
	h.deliverByID(w, r, false)
}

// ServeProtected godoc
// @Summary Выдача по имени на диске
// @Description Отдаёт файл по его имени в закрытом каталоге. По умолчанию
// содержимое отдаётся вложением и засчитывается как скачивание;
// disposition=inline отдаёт его для просмотра без счётчика.
// @Tags Delivery
// @Produce octet-stream
// @Param filename path string true "Имя файла на диске"
// @Param disposition query string false "inline для просмотра в браузере" Enums(inline, attachment)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {file} binary "Содержимое файла"
// @Failure 403 {object} requestresponse.ErrorResponse "Файл недоступен пользователю"
// @Failure 404 {object} requestresponse.ErrorResponse "Файл не найден"
// @Router /protected/{filename} [get]
func (h *DeliveryHandler) ServeProtected(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	storedName := chi.URLParam(r, "filename")
	inline := r.URL.Query().Get("disposition") == "inline"

	file, reader, err := h.FileService.OpenByStoredName(r.Context(), claims, storedName, inline == false)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}
	defer reader.Close()

	streamFile(w, r, file, reader, inline)
}

func (h *DeliveryHandler) deliverByID(w http.ResponseWriter, r *http.Request, counted bool) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	id, err := fileIDFromRequest(r)
	if err != nil {
		util.HandleError(w, "неверный формат ID файла", http.StatusBadRequest)
		return
	}

	file, reader, err := h.FileService.OpenByID(r.Context(), claims, id, counted)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}
	defer reader.Close()

	streamFile(w, r, file, reader, counted == false)
}

// streamFile : передаёт содержимое с заголовками, запрещающими кэширование
// посредниками. Имя в Content-Disposition берётся из исходного имени файла.
func streamFile(w http.ResponseWriter, r *http.Request, file *model.SecureFile, reader io.Reader, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, sanitizeDispositionName(file.OriginalName)))
	w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	w.Header().Set("Cache-Control", "no-cache, must-revalidate")
	w.Header().Set("Expires", "0")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		// клиент оборвал соединение или диск подвёл, ответ уже начат
		util.LogError(fmt.Sprintf("[Delivery] передача файла %d прервана", file.ID), err)
	}
}

func sanitizeDispositionName(name string) string {
	name = strings.ReplaceAll(name, `"`, "")
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\n", "")
	return name
}
