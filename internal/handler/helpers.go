package handler

import (
	"context"
	"encoding/json"
	"net/http"
	requestresponse "secure-files-server/internal/model/requestresponse"
	"secure-files-server/internal/security"
	"secure-files-server/internal/util"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// requireAdmin : достаёт пользователя из контекста и проверяет права
// администратора, при отказе сам пишет ответ
func requireAdmin(w http.ResponseWriter, ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return nil, false
	}
	if claims.IsAdmin == false {
		util.HandleError(w, "операция доступна только администратору", http.StatusForbidden)
		return nil, false
	}
	return claims, true
}

func fileIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "file_id"), 10, 64)
}

func roleIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "role_id"), 10, 64)
}

func writeResponseMessage(w http.ResponseWriter, status int, response map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(requestresponse.ResponseMessage{Response: response})
}
