package handler

import (
	"context"
	"encoding/json"
	"net/http"
	requestresponse "secure-files-server/internal/model/requestresponse"
	"secure-files-server/internal/ports"
	"secure-files-server/internal/security"
	"secure-files-server/internal/util"
	"time"

	"github.com/go-chi/chi/v5"
)

type RoleHandler struct {
	ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService}
}

// CreateRole godoc
// @Summary Создание пользовательской роли
// @Description Регистрирует новую роль. Имя роли уникально без учёта регистра
// и не может совпадать с системной ролью. Возможности роли ограничены
// просмотром и скачиванием файлов. Доступно только администратору.
// @Tags Roles
// @Accept json
// @Produce json
// @Param request body requestresponse.CreateRoleRequest true "Параметры роли"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.RoleView
// @Failure 400 {object} requestresponse.ErrorResponse "Параметры роли не прошли проверку"
// @Failure 403 {object} requestresponse.ErrorResponse "Недостаточно прав"
// @Failure 409 {object} requestresponse.ErrorResponse "Имя роли уже занято"
// @Router /api/roles [post]
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := requireAdmin(w, ctx)
	if ok == false {
		return
	}

	var request requestresponse.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	role, err := h.RoleService.CreateRole(ctx, claims, request.RoleName, request.DisplayName, request.Description, request.Capabilities)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.RoleViewFromModel(role))
}

// ListRoles godoc
// @Summary Список активных ролей
// @Tags Roles
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListRolesResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Router /api/roles [get]
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	roles, err := h.RoleService.ListRoles(ctx)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	views := make([]requestresponse.RoleView, 0, len(roles))
	for i := range roles {
		views = append(views, requestresponse.RoleViewFromModel(&roles[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.ListRolesResponse{
		Data:  views,
		Count: len(views),
	})
}

// UpdateRole godoc
// @Summary Изменение пользовательской роли
// @Description Меняет отображаемое имя, описание и возможности роли.
// Имя роли неизменно. Доступно только администратору.
// @Tags Roles
// @Accept json
// @Produce json
// @Param role_id path int true "ID роли"
// @Param request body requestresponse.UpdateRoleRequest true "Новые параметры роли"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.RoleView
// @Failure 403 {object} requestresponse.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} requestresponse.ErrorResponse "Роль не найдена"
// @Router /api/roles/{role_id} [put]
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := requireAdmin(w, ctx)
	if ok == false {
		return
	}

	id, err := roleIDFromRequest(r)
	if err != nil {
		util.HandleError(w, "неверный формат ID роли", http.StatusBadRequest)
		return
	}

	var request requestresponse.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	role, err := h.RoleService.UpdateRole(ctx, claims, id, request.DisplayName, request.Description, request.Capabilities)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.RoleViewFromModel(role))
}

// DeleteRole godoc
// @Summary Удаление пользовательской роли
// @Description Удаляет роль, если она не назначена ни одному пользователю.
// Доступно только администратору.
// @Tags Roles
// @Produce json
// @Param role_id path int true "ID роли"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ResponseMessage
// @Failure 403 {object} requestresponse.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} requestresponse.ErrorResponse "Роль не найдена"
// @Failure 409 {object} requestresponse.ErrorResponse "Роль назначена пользователям"
// @Router /api/roles/{role_id} [delete]
func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := requireAdmin(w, ctx)
	if ok == false {
		return
	}

	id, err := roleIDFromRequest(r)
	if err != nil {
		util.HandleError(w, "неверный формат ID роли", http.StatusBadRequest)
		return
	}

	if err := h.RoleService.DeleteRole(ctx, claims, id); err != nil {
		util.HandleAppError(w, err)
		return
	}

	writeResponseMessage(w, http.StatusOK, map[string]interface{}{"deleted": id})
}

// GetUserRoles godoc
// @Summary Роли пользователя
// @Description Возвращает пользовательские роли, назначенные пользователю.
// Доступно только администратору.
// @Tags Roles
// @Produce json
// @Param user_uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserRolesResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Недостаточно прав"
// @Router /api/users/{user_uuid}/roles [get]
func (h *RoleHandler) GetUserRoles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	_, ok := requireAdmin(w, ctx)
	if ok == false {
		return
	}

	userUUID := chi.URLParam(r, "user_uuid")

	roles, err := h.RoleService.GetUserRoles(ctx, userUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.UserRolesResponse{
		UserUUID: userUUID,
		Roles:    roles,
	})
}

// SetUserRoles godoc
// @Summary Назначение ролей пользователю
// @Description Полностью заменяет набор пользовательских ролей пользователя.
// Назначать можно только существующие активные роли.
// Доступно только администратору.
// @Tags Roles
// @Accept json
// @Produce json
// @Param user_uuid path string true "UUID пользователя"
// @Param request body requestresponse.SetUserRolesRequest true "Новый набор ролей"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserRolesResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неизвестная роль в списке"
// @Failure 403 {object} requestresponse.ErrorResponse "Недостаточно прав"
// @Router /api/users/{user_uuid}/roles [put]
func (h *RoleHandler) SetUserRoles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	claims, ok := requireAdmin(w, ctx)
	if ok == false {
		return
	}

	userUUID := chi.URLParam(r, "user_uuid")

	var request requestresponse.SetUserRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.RoleService.SetUserRoles(ctx, claims, userUUID, request.Roles); err != nil {
		util.HandleAppError(w, err)
		return
	}

	roles, err := h.RoleService.GetUserRoles(ctx, userUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.UserRolesResponse{
		UserUUID: userUUID,
		Roles:    roles,
	})
}
