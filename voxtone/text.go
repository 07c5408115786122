package voxtone

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	errRequired  = errors.New("required")
	errEmptyText = errors.New("text is empty")
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// readText takes the text to speak from args, or from in when args are empty
// or a single "-".
func readText(args []string, in io.Reader) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(io.LimitReader(in, maxTextLen*4+1))
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return normalizeText(string(data))
	}
	return normalizeText(strings.Join(args, " "))
}

// normalizeText unifies line endings, drops control characters, trims trailing
// blanks on each line and collapses runs of empty lines.
func normalizeText(input string) (string, error) {
	s := strings.ReplaceAll(input, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}

	var out []string
	emptyRun := 0
	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.TrimRight(line, " \t")
		if isBlank(line) {
			emptyRun++
			if emptyRun == 1 {
				out = append(out, "")
			}
			continue
		}
		emptyRun = 0
		out = append(out, line)
	}

	result := strings.TrimSpace(strings.Join(out, "\n"))
	if result == "" {
		return "", errEmptyText
	}
	if n := len([]rune(result)); n > maxTextLen {
		return "", fmt.Errorf("text too long: %d > %d characters", n, maxTextLen)
	}
	return result, nil
}
