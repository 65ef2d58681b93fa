package filename_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/sir_venger/upload_lite/pkg/filename"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"traversal", "../../etc/passwd", "....etcpasswd"},
		{"windows traversal", `..\..\boot.ini`, "....boot.ini"},
		{"absolute", "/etc/shadow", "etcshadow"},
		{"illegal chars", `a\b:c*d?e"f<g>h|i`, "abcdefghi"},
		{"control chars", "a\x00b\nc\x7f", "abc\x7f"},
		{"dot", ".", ""},
		{"dot dot", "..", ""},
		{"device", "con.txt", ""},
		{"device upper", "LPT1", ""},
		{"device prefix only", "console.log", "console.log"},
		{"trailing dots and spaces", "name. . ", "name"},
		{"unicode kept", "отчёт.txt", "отчёт.txt"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filename.Sanitize(tt.in))
		})
	}
}

func TestSanitize_NoSeparators(t *testing.T) {
	inputs := []string{
		"../../../../tmp/x", "..%2f..%2fx", "a/../../b", `C:\Windows\system32`, "./.hidden", "////",
	}
	for _, in := range inputs {
		out := filename.Sanitize(in)
		assert.NotContains(t, out, "/", in)
		assert.NotContains(t, out, `\`, in)
		assert.NotEqual(t, "..", out, in)
	}
}

func TestSanitize_Truncates(t *testing.T) {
	out := filename.Sanitize(strings.Repeat("a", 300))
	assert.Len(t, out, filename.MaxLen)

	// 2-байтовые руны: обрезка не должна разрывать символ.
	out = filename.Sanitize(strings.Repeat("é", 200))
	assert.LessOrEqual(t, len(out), filename.MaxLen)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, 254, len(out))
}

func TestSanitizeWith_Replacement(t *testing.T) {
	assert.Equal(t, "a_b", filename.SanitizeWith("a/b", filename.Options{Replacement: "_"}))
	assert.Equal(t, "dir_file.txt", filename.SanitizeWith(`dir\file.txt`, filename.Options{Replacement: "_"}))
	// Небезопасная замена отбрасывается.
	assert.Equal(t, "ab", filename.SanitizeWith("a/b", filename.Options{Replacement: "/"}))
}
