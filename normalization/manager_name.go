// Пакет normalization приводит имена менеджеров из выгрузок к виду для
// отображения и к короткому ключу сопоставления.
package normalization

import "strings"

// Format нормализует сырое имя менеджера. Возвращает отображаемое имя
// (без пометки офиса продаж и хвоста с телефоном) и короткий ключ из первых
// двух слов. Ключ обязан совпадать байт в байт между живым разбором и
// исторической реконструкцией, иначе рвётся сопоставление менеджеров
// между датами.
func Format(raw string) (display, cut string) {
	display = strings.TrimSpace(strings.ReplaceAll(raw, "o/п", ""))
	if i := strings.Index(display, " тел."); i >= 0 {
		display = display[:i]
	}

	words := strings.Fields(display)
	if len(words) > 2 {
		cut = words[0] + " " + words[1]
	} else {
		cut = display
	}
	return display, cut
}

// CutKey возвращает только короткий ключ сопоставления
func CutKey(raw string) string {
	_, cut := Format(raw)
	return cut
}
