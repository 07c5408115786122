package voxtone

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		err  bool
	}{
		{name: "plain", in: "Привет", want: "Привет"},
		{name: "trims", in: "  hello \n", want: "hello"},
		{name: "crlf", in: "a\r\nb\rc", want: "a\nb\nc"},
		{name: "control chars", in: "a\x00b\x07c\x7f", want: "abc"},
		{name: "keeps tabs", in: "a\tb", want: "a\tb"},
		{name: "collapses blank lines", in: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "trailing blanks", in: "a   \nb\t", want: "a\nb"},
		{name: "empty", in: "   \n\t", err: true},
		{name: "only controls", in: "\x01\x02", err: true},
		{name: "too long", in: strings.Repeat("я", maxTextLen+1), err: true},
		{name: "limit is in characters", in: strings.Repeat("я", maxTextLen), want: strings.Repeat("я", maxTextLen)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeText(tt.in)
			if tt.err {
				if err == nil {
					t.Fatalf("normalizeText(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeText(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadText(t *testing.T) {
	got, err := readText([]string{"Привет,", "мир"}, strings.NewReader("ignored"))
	if err != nil || got != "Привет, мир" {
		t.Fatalf("readText(args) = %q, %v", got, err)
	}

	got, err = readText([]string{"-"}, strings.NewReader("from stdin\n"))
	if err != nil || got != "from stdin" {
		t.Fatalf("readText(-) = %q, %v", got, err)
	}

	if _, err := readText(nil, strings.NewReader("")); !errors.Is(err, errEmptyText) {
		t.Fatalf("readText(empty stdin) error = %v, want %v", err, errEmptyText)
	}
}
