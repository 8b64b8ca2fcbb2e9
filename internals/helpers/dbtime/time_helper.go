// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Nama locals yang di-set middleware zona waktu
const (
	LocTimezone = "app_timezone" // string, misal "Asia/Jakarta"
	LocLocation = "app_loc"      // *time.Location
)

var (
	locMu      sync.RWMutex
	defaultLoc = time.Local
)

// SetLocation mengganti zona wall-clock default (dipanggil sekali saat boot).
// Nama kosong / tidak dikenal → tetap pakai time.Local.
func SetLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	loc := time.Local
	if name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}
	locMu.Lock()
	defaultLoc = loc
	locMu.Unlock()
	return loc
}

// Location: zona wall-clock yang dipakai semua perhitungan tanggal lokal.
func Location() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()
	return defaultLoc
}

// GetLocation:
// 1) c.Locals("app_loc") kalau middleware sudah set
// 2) c.Locals("app_timezone") (string) → LoadLocation
// 3) fallback Location()
func GetLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return Location()
	}
	if v := c.Locals(LocLocation); v != nil {
		if loc, ok := v.(*time.Location); ok && loc != nil {
			return loc
		}
	}
	if v := c.Locals(LocTimezone); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			if loc, err := time.LoadLocation(strings.TrimSpace(s)); err == nil {
				c.Locals(LocLocation, loc)
				return loc
			}
		}
	}
	return Location()
}

// Now dalam zona request.
func Now(c *fiber.Ctx) time.Time {
	return time.Now().In(GetLocation(c))
}

// Today "YYYY-MM-DD" dalam zona request.
func Today(c *fiber.Ctx) string {
	return FormatLocalDate(Now(c))
}
