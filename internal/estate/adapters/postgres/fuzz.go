package postgres

import (
	"strings"
)

var fuzzEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`|`, `\|`,
	`*`, `\*`,
	`+`, `\+`,
	`?`, `\?`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`[`, `\[`,
	`]`, `\]`,
	`_`, `\_`,
)

// FuzzPattern строит SIMILAR TO шаблон нечеткого поиска из строки запроса.
// Каждое слово экранируется и ищется как подстрока, слова объединяются
// через альтернативу.
func FuzzPattern(input string) string {
	words := strings.Fields(input)
	parts := make([]string, len(words))
	for i, word := range words {
		parts[i] = "%" + fuzzEscaper.Replace(word) + "%"
	}
	return "(" + strings.Join(parts, "|") + ")"
}
