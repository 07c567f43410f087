package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"secure-files-server/config"
	_ "secure-files-server/docs"
	"secure-files-server/internal/handler"
	"secure-files-server/internal/repository"
	"secure-files-server/internal/security"
	"secure-files-server/internal/service"
	"secure-files-server/internal/storage"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Secure-files-server
// @version 1.0
// @description REST API для ролевого доступа к защищённым файлам

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	fileStorage := storage.NewLocalStorage(cfg.Storage.ProtectedDir)
	if err := fileStorage.Initialize(); err != nil {
		log.Fatalf("Не удалось подготовить закрытый каталог: %v", err)
	}

	srv, router := config.SetupServer(cfg.ServerAddr)

	fileRepo := repository.NewFileRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.Redis)*time.Second)

	validator := service.NewUploadValidator(cfg.Upload.MaxFileSize, cfg.Upload.AllowedExtensions)
	fileService := service.NewFileService(fileRepo, membershipRepo, cacheRepo, fileStorage, validator, db)
	roleService := service.NewRoleService(roleRepo, membershipRepo, db)

	jwtService := security.NewJWTService(&cfg.JWT)

	fileHandler := handler.NewFileHandler(fileService, cfg.Upload.MaxFileSize)
	deliveryHandler := handler.NewDeliveryHandler(fileService)
	roleHandler := handler.NewRoleHandler(roleService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupFileRoutes(router, fileHandler, deliveryHandler, jwtService, cfg)
	setupDeliveryRoutes(router, deliveryHandler, jwtService, cfg)
	setupRoleRoutes(router, roleHandler, jwtService, cfg)

	runServer(ctx, srv)
}

func setupFileRoutes(r chi.Router, h *handler.FileHandler, d *handler.DeliveryHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/files", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtService, cfg.Admin.AdminToken))
		r.Get("/", h.ListFiles)
		r.Post("/", h.UploadFile)

		r.Route("/{file_id}", func(r chi.Router) {
			r.Get("/", h.GetFile)
			r.Put("/roles", h.UpdateFileRoles)
			r.Put("/description", h.UpdateFileDescription)
			r.Delete("/", h.DeleteFile)

			r.Get("/download", d.DownloadFile)
			r.Get("/view", d.ViewFile)
		})
	})
}

func setupDeliveryRoutes(r chi.Router, d *handler.DeliveryHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/protected", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtService, cfg.Admin.AdminToken))
		r.Get("/{filename}", d.ServeProtected)
	})
}

func setupRoleRoutes(r chi.Router, h *handler.RoleHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/roles", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtService, cfg.Admin.AdminToken))
		r.Get("/", h.ListRoles)
		r.Post("/", h.CreateRole)

		r.Route("/{role_id}", func(r chi.Router) {
			r.Put("/", h.UpdateRole)
			r.Delete("/", h.DeleteRole)
		})
	})

	r.Route("/api/users/{user_uuid}/roles", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtService, cfg.Admin.AdminToken))
		r.Get("/", h.GetUserRoles)
		r.Put("/", h.SetUserRoles)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
