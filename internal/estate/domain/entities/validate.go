package entities

import "strings"

// maxTextLen ограничивает длину текстовых полей в байтах.
const maxTextLen = 512

// validText проверяет общее правило текстовых полей:
// без крайних пробелов, непустое, не длиннее max байт.
func validText(s string, max int) bool {
	return strings.TrimSpace(s) == s && s != "" && len(s) <= max
}
