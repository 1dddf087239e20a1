package payment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatRupees renders paisa the way gateway forms expect: "3000" or "3000.50".
func FormatRupees(paisa int64) string {
	if paisa%100 == 0 {
		return strconv.FormatInt(paisa/100, 10)
	}
	return fmt.Sprintf("%d.%02d", paisa/100, paisa%100)
}

// ParseRupees parses gateway amounts such as "3000", "3000.0" or "3,000.00" into paisa.
func ParseRupees(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	return int64(math.Round(v * 100)), nil
}
