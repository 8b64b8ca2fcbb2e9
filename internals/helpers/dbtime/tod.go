// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var hhmmRe = regexp.MustCompile(`^([0-1]\d|2[0-3]):([0-5]\d)$`)

// IsValidHHMM: strict 24h "HH:MM" (zero-padded).
func IsValidHHMM(s string) bool {
	return hhmmRe.MatchString(s)
}

// Tod = time of day (tanggal & zona dibuang)
type Tod struct{ time.Time }

// FromMinutes: menit sejak 00:00 (dibatasi 0..1439).
func FromMinutes(m int) Tod {
	if m < 0 {
		m = 0
	}
	if m > 24*60-1 {
		m = 24*60 - 1
	}
	return Tod{Time: time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC)}
}

// Parse: "HH:MM" atau "HH:MM:SS"
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

// MustMinutes: menit sejak 00:00 dari "HH:MM"; -1 kalau format salah.
func MustMinutes(s string) int {
	t, err := Parse(s)
	if err != nil {
		return -1
	}
	return t.Minutes()
}

func (t Tod) Minutes() int { return t.Hour()*60 + t.Minute() }

func (t Tod) String() string { return t.Format("15:04") }

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return fmt.Errorf("tod: jam tidak valid %q (format HH:MM)", strings.TrimSuffix(s, ":00"))
	}
	t.Time = tt
	return nil
}
