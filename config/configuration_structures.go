package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type AdminConfig struct {
	// AdminToken : сервисный токен, даёт права администратора без JWT
	AdminToken string `yaml:"admin_token"`
}

type StorageConfig struct {
	// ProtectedDir : защищённая директория с загруженными файлами,
	// недоступная напрямую через веб-сервер
	ProtectedDir string `yaml:"protected_dir"`
}

type UploadConfig struct {
	// MaxFileSize : максимальный размер файла в байтах
	MaxFileSize int64 `yaml:"max_file_size"`
	// AllowedExtensions : список разрешённых расширений; пустой список — расширения не фильтруются
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

type TTL struct {
	// Redis : TTL кэша метаданных файлов в секундах
	Redis int `yaml:"redis"`
}
