package service

import "secure-files-server/internal/model"

// CanAccessFile решает, доступен ли файл пользователю. Чистая функция
// без обращений к БД и кэшу, вызывается заново на каждый запрос.
//
// Правила:
//   - администратор получает доступ всегда;
//   - пустой список разрешённых ролей означает «только администратор»,
//     файл без настроенных ролей никогда не становится публичным;
//   - иначе достаточно одного точного совпадения роли пользователя
//     со списком разрешённых.
func CanAccessFile(isAdmin bool, userRoles []string, file *model.SecureFile) bool {
	if isAdmin {
		return true
	}

	if len(file.AllowedRoles) == 0 {
		return false
	}

	allowed := make(map[string]struct{}, len(file.AllowedRoles))
	for _, role := range file.AllowedRoles {
		allowed[role] = struct{}{}
	}

	for _, role := range userRoles {
		if _, ok := allowed[role]; ok {
			return true
		}
	}

	return false
}
