package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"secure-files-server/config"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/model"
	"secure-files-server/internal/ports"
	"secure-files-server/internal/security"
	"secure-files-server/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type FileService struct {
	fileRepo       ports.FileRepository
	membershipRepo ports.MembershipRepository
	cacheRepo      ports.CacheRepository
	storage        ports.FileStorage
	validator      *UploadValidator
	database       *config.Database
}

func NewFileService(
	fileRepo ports.FileRepository,
	membershipRepo ports.MembershipRepository,
	cacheRepo ports.CacheRepository,
	storage ports.FileStorage,
	validator *UploadValidator,
	database *config.Database,
) *FileService {
	return &FileService{
		fileRepo:       fileRepo,
		membershipRepo: membershipRepo,
		cacheRepo:      cacheRepo,
		storage:        storage,
		validator:      validator,
		database:       database,
	}
}

// UploadFile : проверяет содержимое, записывает его на диск и сохраняет
// запись в реестре. Если запись сохранить не удалось, файл убирается
// с диска, осиротевших файлов не остаётся.
func (s *FileService) UploadFile(ctx context.Context, principal *security.Claims, declaredName string, content []byte, description string, allowedRoles []string) (*model.SecureFile, error) {
	if principal == nil {
		return nil, fmt.Errorf("[FileService] загрузка без пользователя: %w", apperror.ErrUnauthenticated)
	}

	mimeType, err := s.validator.Validate(declaredName, content)
	if err != nil {
		return nil, err
	}

	storedName, storagePath, err := s.storage.Store(bytes.NewReader(content), declaredName)
	if err != nil {
		return nil, util.LogError("[FileService] не удалось записать файл на диск", err)
	}

	file := &model.SecureFile{
		StoredName:   storedName,
		OriginalName: declaredName,
		StoragePath:  storagePath,
		SizeBytes:    int64(len(content)),
		MimeType:     mimeType,
		UploadedBy:   principal.UserUUID,
		AllowedRoles: pq.StringArray(allowedRoles),
		Description:  description,
	}

	tx, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		s.removeStored(storedName)
		return nil, err
	}

	if _, err := s.fileRepo.Create(ctx, tx, file); err != nil {
		if rbErr := rollback(); rbErr != nil {
			util.LogError("[FileService] ошибка отката транзакции", rbErr)
		}
		s.removeStored(storedName)
		return nil, err
	}

	if err := commit(); err != nil {
		s.removeStored(storedName)
		return nil, util.LogError("[FileService] ошибка фиксации транзакции", err)
	}

	if err := s.cacheRepo.SetFile(ctx, file); err != nil {
		util.LogError("[FileService] не удалось положить запись в кэш", err)
	}

	return file, nil
}

// GetFile : возвращает запись о файле, если файл доступен пользователю
func (s *FileService) GetFile(ctx context.Context, principal *security.Claims, id int64) (*model.SecureFile, error) {
	file, err := s.lookupByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, principal, file); err != nil {
		return nil, err
	}

	return file, nil
}

// ListFiles : постраничный список, отфильтрованный по доступности.
// Фильтрация выполняется теми же правилами, что и выдача, отдельной
// логики видимости нет.
func (s *FileService) ListFiles(ctx context.Context, principal *security.Claims, limit, offset int) ([]model.SecureFile, error) {
	if principal == nil {
		return nil, fmt.Errorf("[FileService] список без пользователя: %w", apperror.ErrUnauthenticated)
	}

	files, err := s.fileRepo.List(ctx, s.database.DB, limit, offset)
	if err != nil {
		return nil, err
	}

	roles, err := s.effectiveRoles(ctx, principal)
	if err != nil {
		return nil, err
	}

	visible := []model.SecureFile{}
	for _, file := range files {
		if CanAccessFile(principal.IsAdmin, roles, &file) {
			visible = append(visible, file)
		}
	}

	return visible, nil
}

// UpdateFileRoles : заменяет список разрешённых ролей и сбрасывает кэш
func (s *FileService) UpdateFileRoles(ctx context.Context, principal *security.Claims, id int64, roles []string) error {
	return s.updateFile(ctx, id, func(tx sqlx.ExtContext) error {
		return s.fileRepo.UpdateRoles(ctx, tx, id, roles)
	})
}

// UpdateFileDescription : заменяет описание файла и сбрасывает кэш
func (s *FileService) UpdateFileDescription(ctx context.Context, principal *security.Claims, id int64, description string) error {
	return s.updateFile(ctx, id, func(tx sqlx.ExtContext) error {
		return s.fileRepo.UpdateDescription(ctx, tx, id, description)
	})
}

// DeleteFile : убирает файл с диска и удаляет запись. Отсутствие файла
// на диске удалению не мешает, источником истины является реестр.
func (s *FileService) DeleteFile(ctx context.Context, principal *security.Claims, id int64) error {
	file, err := s.lookupByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Remove(file.StoredName); err != nil {
		util.LogError("[FileService] не удалось удалить файл с диска, запись будет удалена", err)
	}

	tx, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, tx, id); err != nil {
		if rbErr := rollback(); rbErr != nil {
			util.LogError("[FileService] ошибка отката транзакции", rbErr)
		}
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[FileService] ошибка фиксации транзакции", err)
	}

	if err := s.cacheRepo.DeleteFile(ctx, file.ID, file.StoredName); err != nil {
		util.LogError("[FileService] не удалось сбросить кэш", err)
	}

	return nil
}

// OpenByID : конвейер выдачи по id реестра
func (s *FileService) OpenByID(ctx context.Context, principal *security.Claims, id int64, counted bool) (*model.SecureFile, io.ReadCloser, error) {
	file, err := s.lookupByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return s.open(ctx, principal, file, counted)
}

// OpenByStoredName : конвейер выдачи по имени на диске
func (s *FileService) OpenByStoredName(ctx context.Context, principal *security.Claims, storedName string, counted bool) (*model.SecureFile, io.ReadCloser, error) {
	file, err := s.lookupByStoredName(ctx, storedName)
	if err != nil {
		return nil, nil, err
	}
	return s.open(ctx, principal, file, counted)
}

// open : авторизация, открытие потока и инкремент счётчика. Счётчик
// увеличивается после успешного открытия, но до передачи содержимого:
// оборванное клиентом скачивание всё равно считается.
func (s *FileService) open(ctx context.Context, principal *security.Claims, file *model.SecureFile, counted bool) (*model.SecureFile, io.ReadCloser, error) {
	if err := s.authorize(ctx, principal, file); err != nil {
		return nil, nil, err
	}

	reader, err := s.storage.Open(file.StoredName)
	if errors.Is(err, apperror.ErrNotFound) {
		// запись в реестре есть, а файла на диске нет: рассинхронизация
		// хранилища, требует внимания оператора
		util.LogError(fmt.Sprintf("[FileService] запись %d существует, но файл %q отсутствует на диске", file.ID, file.StoredName), err)
		return nil, nil, fmt.Errorf("[FileService] файл %d: %w", file.ID, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}

	if counted {
		if err := s.fileRepo.IncrementDownloadCount(ctx, s.database.DB, file.ID); err != nil {
			// сбой счётчика не должен блокировать выдачу
			util.LogError("[FileService] не удалось увеличить счётчик скачиваний", err)
		} else {
			file.DownloadCount++
			// в кэше остался старый счётчик, запись сбрасывается
			if err := s.cacheRepo.DeleteFile(ctx, file.ID, file.StoredName); err != nil {
				util.LogError("[FileService] не удалось сбросить кэш", err)
			}
		}
	}

	return file, reader, nil
}

func (s *FileService) lookupByID(ctx context.Context, id int64) (*model.SecureFile, error) {
	cached, err := s.cacheRepo.GetFileByID(ctx, id)
	if err != nil {
		util.LogError("[FileService] ошибка чтения кэша", err)
	}
	if cached != nil {
		return cached, nil
	}

	file, err := s.fileRepo.GetByID(ctx, s.database.DB, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetFile(ctx, file); err != nil {
		util.LogError("[FileService] не удалось положить запись в кэш", err)
	}

	return file, nil
}

func (s *FileService) lookupByStoredName(ctx context.Context, storedName string) (*model.SecureFile, error) {
	cached, err := s.cacheRepo.GetFileByStoredName(ctx, storedName)
	if err != nil {
		util.LogError("[FileService] ошибка чтения кэша", err)
	}
	if cached != nil {
		return cached, nil
	}

	file, err := s.fileRepo.GetByStoredName(ctx, s.database.DB, storedName)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetFile(ctx, file); err != nil {
		util.LogError("[FileService] не удалось положить запись в кэш", err)
	}

	return file, nil
}

// authorize : собирает действующие роли пользователя и применяет правила
// доступа. Кэш здесь не участвует, решение вычисляется каждый раз.
func (s *FileService) authorize(ctx context.Context, principal *security.Claims, file *model.SecureFile) error {
	if principal == nil {
		return fmt.Errorf("[FileService] доступ без пользователя: %w", apperror.ErrUnauthenticated)
	}

	if principal.IsAdmin {
		return nil
	}

	roles, err := s.effectiveRoles(ctx, principal)
	if err != nil {
		return err
	}

	if CanAccessFile(false, roles, file) == false {
		return fmt.Errorf("[FileService] файл %d недоступен пользователю %s: %w", file.ID, principal.UserUUID, apperror.ErrForbidden)
	}

	return nil
}

// effectiveRoles : роли из токена плюс назначенные пользовательские роли
func (s *FileService) effectiveRoles(ctx context.Context, principal *security.Claims) ([]string, error) {
	custom, err := s.membershipRepo.ListRoles(ctx, s.database.DB, principal.UserUUID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(principal.Roles)+len(custom))
	roles := make([]string, 0, len(principal.Roles)+len(custom))
	for _, role := range append(append([]string{}, principal.Roles...), custom...) {
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}

	return roles, nil
}

func (s *FileService) updateFile(ctx context.Context, id int64, apply func(tx sqlx.ExtContext) error) error {
	file, err := s.lookupByID(ctx, id)
	if err != nil {
		return err
	}

	tx, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return err
	}

	if err := apply(tx); err != nil {
		if rbErr := rollback(); rbErr != nil {
			util.LogError("[FileService] ошибка отката транзакции", rbErr)
		}
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[FileService] ошибка фиксации транзакции", err)
	}

	if err := s.cacheRepo.DeleteFile(ctx, file.ID, file.StoredName); err != nil {
		util.LogError("[FileService] не удалось сбросить кэш", err)
	}

	return nil
}

func (s *FileService) removeStored(storedName string) {
	if err := s.storage.Remove(storedName); err != nil {
		util.LogError("[FileService] не удалось убрать файл после сбоя записи в реестр", err)
	}
}
