// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"log"
	"strings"
	"sync"
	"time"
)

// Zona waktu kampus. Input datetime-local dari form tidak membawa offset.
const DefaultTimezone = "Asia/Jakarta"

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location: Asia/Jakarta, fallback UTC+7 tetap jika tzdata tidak tersedia.
func Location() *time.Location {
	locOnce.Do(func() {
		l, err := time.LoadLocation(DefaultTimezone)
		if err != nil {
			log.Printf("[WARN] tzdata %s tidak tersedia, pakai UTC+7: %v", DefaultTimezone, err)
			l = time.FixedZone("WIB", 7*60*60)
		}
		loc = l
	})
	return loc
}

// ParseLocal mencoba tiap layout di zona kampus. Layout dengan offset
// (RFC3339) tetap memakai offset dari input.
func ParseLocal(s string, layouts ...string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, Location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
