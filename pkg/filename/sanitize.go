// Package filename приводит имена файлов, пришедшие от клиента, к безопасному виду:
// результат никогда не содержит разделителей пути и не может указывать за пределы каталога.
package filename

import (
	"regexp"
	"unicode/utf8"
)

// MaxLen — предел длины имени в байтах для большинства файловых систем.
const MaxLen = 255

var (
	illegalRe  = regexp.MustCompile(`[/?<>\\:*|"]`)
	controlRe  = regexp.MustCompile(`[\x00-\x1f\x80-\x9f]`)
	reservedRe = regexp.MustCompile(`^\.+$`)
	deviceRe   = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	trailingRe = regexp.MustCompile(`[. ]+$`)
)

// Options настраивает санитайзер.
type Options struct {
	// Replacement подставляется вместо каждого запрещённого фрагмента. Пустая строка — удалить.
	Replacement string
}

// Sanitize удаляет из имени запрещённые символы.
func Sanitize(name string) string {
	return SanitizeWith(name, Options{})
}

// SanitizeWith применяет правила по порядку: запрещённые символы, управляющие символы,
// имена из одних точек, зарезервированные имена устройств Windows, хвостовые точки и пробелы,
// затем обрезает результат до MaxLen байт по границе руны.
func SanitizeWith(name string, opts Options) string {
	repl := opts.Replacement
	// Замена сама не должна вносить разделители пути.
	if repl != "" && repl != Sanitize(repl) {
		repl = ""
	}

	out := illegalRe.ReplaceAllLiteralString(name, repl)
	out = controlRe.ReplaceAllLiteralString(out, repl)
	out = reservedRe.ReplaceAllLiteralString(out, repl)
	out = deviceRe.ReplaceAllLiteralString(out, repl)
	out = trailingRe.ReplaceAllLiteralString(out, repl)

	return truncate(out, MaxLen)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}
