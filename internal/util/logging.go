package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"secure-files-server/internal/apperror"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// HandleAppError : сопоставляет ошибку из классификации apperror со
// статус-кодом. Для ошибок, вызванных самим запросом (валидация, конфликт),
// наружу уходит текст ошибки; внутренние сбои отдаются общим сообщением.
func HandleAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		HandleError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperror.ErrConflict):
		HandleError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperror.ErrNotFound):
		HandleError(w, "не найдено", http.StatusNotFound)
	case errors.Is(err, apperror.ErrUnauthenticated):
		HandleError(w, "требуется вход в систему", http.StatusUnauthorized)
	case errors.Is(err, apperror.ErrForbidden):
		HandleError(w, "доступ запрещён", http.StatusForbidden)
	case errors.Is(err, apperror.ErrIO), errors.Is(err, apperror.ErrPersistence):
		log.Println(err)
		HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	default:
		log.Println(err)
		HandleError(w, "неизвестная ошибка", http.StatusInternalServerError)
	}
}
