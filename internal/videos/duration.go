package videos

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)(?:\.\d+)?S)?)?$`)

// ParseISODuration converts an ISO-8601 duration such as "PT4M13S" into whole
// seconds. Fractional seconds are truncated. Year, month and week designators
// are not supported; the provider API never emits them.
func ParseISODuration(value string) (int, error) {
	m := isoDurationPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, fmt.Errorf("malformed ISO-8601 duration %q", value)
	}
	if m[1] == "" && m[2] == "" && m[3] == "" && m[4] == "" {
		return 0, fmt.Errorf("empty ISO-8601 duration %q", value)
	}

	days := atoiOrZero(m[1])
	hours := atoiOrZero(m[2])
	minutes := atoiOrZero(m[3])
	seconds := atoiOrZero(m[4])

	return ((days*24+hours)*60+minutes)*60 + seconds, nil
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
