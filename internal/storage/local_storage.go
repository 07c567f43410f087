package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/util"
	"strings"

	"github.com/google/uuid"
)

const htaccessContent = "Order Deny,Allow\nDeny from all\n"

// LocalStorage хранит файлы в закрытом каталоге на диске.
// Прямой доступ веб-сервера к каталогу заблокирован, выдача идёт только
// через приложение.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

// Initialize : создаёт закрытый каталог и маркерные файлы в нём.
// Повторный вызов безопасен.
func (s *LocalStorage) Initialize() error {
	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return util.LogError("[Storage] не удалось создать закрытый каталог", fmt.Errorf("%v: %w", err, apperror.ErrIO))
	}

	htaccess := filepath.Join(s.root, ".htaccess")
	if _, err := os.Stat(htaccess); os.IsNotExist(err) {
		if err := os.WriteFile(htaccess, []byte(htaccessContent), 0o640); err != nil {
			return util.LogError("[Storage] не удалось записать .htaccess", fmt.Errorf("%v: %w", err, apperror.ErrIO))
		}
	}

	index := filepath.Join(s.root, "index.html")
	if _, err := os.Stat(index); os.IsNotExist(err) {
		if err := os.WriteFile(index, []byte("<!-- Silence is golden -->\n"), 0o640); err != nil {
			return util.LogError("[Storage] не удалось записать index.html", fmt.Errorf("%v: %w", err, apperror.ErrIO))
		}
	}

	return nil
}

// Store : записывает содержимое под уникальным именем, построенным из
// очищенного исходного имени. Возвращает имя на диске и полный путь.
func (s *LocalStorage) Store(reader io.Reader, declaredName string) (string, string, error) {
	base := util.SanitizeFileName(declaredName)
	ext := util.SafeExtension(declaredName)

	storedName := fmt.Sprintf("%s_%s", base, uuid.New().String()[:8])
	if ext != "" {
		storedName = storedName + "." + ext
	}

	path := filepath.Join(s.root, storedName)

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", "", util.LogError("[Storage] не удалось создать временный файл", fmt.Errorf("%v: %w", err, apperror.ErrIO))
	}

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", "", util.LogError("[Storage] ошибка записи содержимого", fmt.Errorf("%v: %w", err, apperror.ErrIO))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", "", util.LogError("[Storage] ошибка закрытия временного файла", fmt.Errorf("%v: %w", err, apperror.ErrIO))
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", "", util.LogError("[Storage] ошибка перемещения файла", fmt.Errorf("%v: %w", err, apperror.ErrIO))
	}

	return storedName, path, nil
}

// Open : открывает файл по имени на диске. Имена с разделителями пути
// отклоняются, выйти за пределы каталога нельзя.
func (s *LocalStorage) Open(storedName string) (io.ReadCloser, error) {
	if err := validateStoredName(storedName); err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.root, storedName))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("[Storage] файл %q: %w", storedName, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[Storage] не удалось открыть файл", fmt.Errorf("%v: %w", err, apperror.ErrIO))
	}

	return file, nil
}

// Remove : удаляет файл с диска; отсутствие файла не считается ошибкой
func (s *LocalStorage) Remove(storedName string) error {
	if err := validateStoredName(storedName); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.root, storedName))
	if err != nil && os.IsNotExist(err) == false {
		return util.LogError("[Storage] не удалось удалить файл", fmt.Errorf("%v: %w", err, apperror.ErrIO))
	}

	return nil
}

func validateStoredName(storedName string) error {
	if storedName == "" ||
		strings.ContainsAny(storedName, `/\`) ||
		strings.Contains(storedName, "..") {
		return fmt.Errorf("[Storage] недопустимое имя файла %q: %w", storedName, apperror.ErrValidation)
	}
	return nil
}
