package security

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"secure-files-server/config"
	"secure-files-server/internal/util"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// Claims : аутентифицированный пользователь. Токены выпускает внешний
// identity-сервис, здесь они только проверяются. Roles — системные роли
// из токена; пользовательские роли добавляются из БД при проверке доступа.
type Claims struct {
	UserUUID string   `json:"user_uuid"`
	IsAdmin  bool     `json:"is_admin,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

func (service *JWTService) ValidateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil || jwtToken.Valid == false {
		return nil, util.LogError("невалидный токен", err)
	}

	return claims, nil
}

func JWTMiddleware(secretKey []byte, jwtService *JWTService, adminToken string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(secretKey, jwtService, adminToken, next))
	}
}

func handleAuthentication(secretKey []byte, jwtService *JWTService, adminToken string, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, "Bearer ") {
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authorizationHeader, "Bearer ")

		if adminToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1 {
			adminClaims := &Claims{
				UserUUID: "admin",
				IsAdmin:  true,
			}
			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, adminClaims))
			next.ServeHTTP(writer, req)
			return
		}

		claims, err := jwtService.ValidateJWT(token, secretKey)
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			http.Error(writer, "невалидный токен", http.StatusUnauthorized)
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}
