package apperror

import "errors"

// Классификация ошибок сервиса. Обработчики HTTP сопоставляют их со
// статус-кодами через errors.Is; текст наружу не раскрывает внутренние пути.
var (
	// ErrNotFound : запись или файл не найдены
	ErrNotFound = errors.New("не найдено")
	// ErrUnauthenticated : запрос без аутентифицированного пользователя
	ErrUnauthenticated = errors.New("требуется вход в систему")
	// ErrForbidden : пользователь аутентифицирован, но доступ запрещён
	ErrForbidden = errors.New("доступ запрещён")
	// ErrValidation : файл отклонён политикой загрузки (размер, расширение, тип содержимого)
	ErrValidation = errors.New("проверка не пройдена")
	// ErrConflict : дублирующееся имя роли либо роль ещё назначена пользователям
	ErrConflict = errors.New("конфликт")
	// ErrIO : сбой чтения или записи физического файла
	ErrIO = errors.New("ошибка ввода-вывода")
	// ErrPersistence : сбой записи в реестр
	ErrPersistence = errors.New("ошибка сохранения")
)
