package parser

import (
	"strconv"
	"strings"
)

// localeFloat разбирает число в локальном формате выгрузки: пробел как
// разделитель тысяч, запятая как десятичный разделитель. Неразборчивое
// значение даёт 0, а не ошибку.
func localeFloat(s string) float64 {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// attrFloat разбирает числовой XML-атрибут; пустой или отсутствующий
// атрибут считается нулём
func attrFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}
