package command

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	durationRegex = regexp.MustCompile(`^(\d+)([smhd])$`)
	diceRegex     = regexp.MustCompile(`^(\d+)d(\d+)$`)
)

// ParseDuration parses the <integer><unit> grammar used by timeout and
// remind, unit one of s, m, h, d. Anything else is a UsageError.
func ParseDuration(token string) (time.Duration, error) {
	m := durationRegex.FindStringSubmatch(strings.ToLower(token))
	if m == nil {
		return 0, Usagef("Invalid duration format! Use format like: 10s, 5m, 1h, 2d")
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, Usagef("Invalid duration format! Use format like: 10s, 5m, 1h, 2d")
	}
	unit := map[string]time.Duration{
		"s": time.Second,
		"m": time.Minute,
		"h": time.Hour,
		"d": 24 * time.Hour,
	}[m[2]]
	return time.Duration(n) * unit, nil
}

// ParseDice parses NdN dice notation ("2d20"). Both sides of the d must be
// integers; "xd6" and "2dY" are usage errors, not faults.
func ParseDice(token string) (rolls, sides int, err error) {
	m := diceRegex.FindStringSubmatch(strings.ToLower(token))
	if m == nil {
		return 0, 0, Usagef("Format has to be in NdN! (e.g., 2d6, 1d20)")
	}
	rolls, _ = strconv.Atoi(m[1])
	sides, _ = strconv.Atoi(m[2])
	if rolls < 1 || sides < 1 {
		return 0, 0, Usagef("Format has to be in NdN! (e.g., 2d6, 1d20)")
	}
	return rolls, sides, nil
}

// SplitChoices splits a comma-separated multi-choice tail, trimming blanks.
func SplitChoices(tail string) []string {
	var out []string
	for _, part := range strings.Split(tail, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
