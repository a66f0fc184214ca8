package timefmt

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidDuration is returned when a renderer receives a negative
// duration. Durations are monotonic by construction, so hitting this
// indicates a clock problem upstream.
var ErrInvalidDuration = errors.New("invalid duration: negative seconds")

// Clock formats a duration in seconds as zero-padded HH:MM:SS.
// Hours grow past 23 instead of rolling into days.
func Clock(seconds int64) (string, error) {
	if seconds < 0 {
		return "", errors.Wrapf(ErrInvalidDuration, "%d", seconds)
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs), nil
}

// Readable formats a duration in seconds as free text, e.g.
// "1 hour, 2 minutes, 5 seconds". Zero-valued leading units are
// omitted, so 45 renders as "45 seconds".
func Readable(seconds int64) (string, error) {
	if seconds < 0 {
		return "", errors.Wrapf(ErrInvalidDuration, "%d", seconds)
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, unit(hours, "hour"))
	}
	if len(parts) > 0 || minutes > 0 {
		parts = append(parts, unit(minutes, "minute"))
	}
	parts = append(parts, unit(secs, "second"))

	return strings.Join(parts, ", "), nil
}

func unit(n int64, name string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", name)
	}
	return fmt.Sprintf("%d %ss", n, name)
}
