package parser

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// DecodeText приводит байты текстовой выгрузки к UTF-8. Кодировки
// пробуются по порядку: UTF-8, Windows-1251, Latin-1. Последняя принимает
// любой байтовый поток, поэтому функция всегда возвращает строку.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), data)
	if err == nil && utf8.Valid(decoded) && !strings.ContainsRune(string(decoded), utf8.RuneError) {
		return string(decoded)
	}

	decoded, _, err = transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err == nil {
		return string(decoded)
	}
	return string(data)
}

// SplitLines разбивает текст на непустые строки, схлопывая повторные
// пробелы внутри строки
func SplitLines(content string) []string {
	raw := strings.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
