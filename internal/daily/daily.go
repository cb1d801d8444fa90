// internal/daily/daily.go
//
// Board of the day: one deterministic seed per UTC date.
// Everyone opening /daily on the same date lands on the same grid, and the
// redirect target is an ordinary share URL.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns base36(HMAC(salt, YYYY-MM-DD)[:8]). The result always matches
// the seed pattern accepted in share URLs.
func Seed(date time.Time, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return strconv.FormatUint(binary.BigEndian.Uint64(sum[:8]), 36)
}
