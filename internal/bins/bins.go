// Package bins parses user-supplied brightness boundary lists.
package bins

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/linuxmatters/lumabin/internal/config"
)

// ErrNoValidBins is returned when no token survives validation
var ErrNoValidBins = errors.New("no valid boundaries in [0, 255)")

// Parse turns "100, 50,50,300" into a sorted, deduplicated boundary list.
// Tokens that are not plain non-negative integers are ignored, as are values
// outside [config.BinMin, config.BinMax). Parse does not apply any default;
// callers decide what to do with ErrNoValidBins.
func Parse(s string) ([]int, error) {
	seen := make(map[int]struct{})
	var out []int

	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if !isDigits(token) {
			continue
		}

		// Overflowing tokens are far above BinMax, treat them as out of range
		v, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		if v < config.BinMin || v >= config.BinMax {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, ErrNoValidBins
	}

	slices.Sort(out)
	return out, nil
}

// Format renders a boundary list in the same form Parse accepts
func Format(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
