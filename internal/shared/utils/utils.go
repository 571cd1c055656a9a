// Утилитарные функции общего назначения
package utils

import "strings"

func StrPtr(s string) *string {
	return &s
}

// NilIfBlank возвращает nil для пустой (или из одних пробелов) строки.
// Нужна для необязательных полей вроде note, которые в БД лежат как NULL.
func NilIfBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
