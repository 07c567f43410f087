package ports

import "io"

// FileStorage : шлюз к защищённой директории. Вся физическая работа с
// файлами идёт только через него.
type FileStorage interface {
	Initialize() error
	// Store : записывает поток под уникальным сгенерированным именем,
	// возвращает имя и абсолютный путь внутри защищённой директории
	Store(reader io.Reader, declaredName string) (storedName string, storagePath string, err error)
	// Open : открывает файл по имени; имена с разделителями пути отклоняются
	Open(storedName string) (io.ReadCloser, error)
	// Remove : удаляет физический файл; отсутствие файла не считается ошибкой
	Remove(storedName string) error
}
