package engine

import (
	"fmt"
	"strconv"
	"strings"
)

func normalizeText(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", ErrEmptyText
	}
	return t, nil
}

// ClampProgress returns p limited to [0,100].
func ClampProgress(p int) int {
	return min(100, max(0, p))
}

// ParseProgress validates raw progress input: it must be an integer in
// [0,100]. Anything else is ErrInvalidProgress.
func ParseProgress(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidProgress, raw)
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidProgress, n)
	}
	return n, nil
}
