package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders the time spent on a prime search, a key
// generation or a codec run. Sub-second values keep an integer unit (µs or
// ms); longer ones are rounded to the millisecond below a minute and to the
// second above (a slow 400-digit keygen prints "2m31s").
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
