package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	dayKeyLayout   = "20060102"
)

// ParseDate converts a YYYY-MM-DD or "YYYY-MM-DD HH:MM:SS" string (assumed
// UTC) to a Unix timestamp string. When endOfDay is set and no time of day
// was given, the result points at 23:59:59 of that date.
func ParseDate(dateStr string, endOfDay bool) (string, error) {
	if dateStr == "" {
		return "", nil
	}

	t, err := time.ParseInLocation(dateTimeLayout, dateStr, time.UTC)
	if err != nil {
		t, err = time.ParseInLocation(dateLayout, dateStr, time.UTC)
		if err != nil {
			return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", dateStr)
		}
		if endOfDay {
			t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		}
	}

	return strconv.FormatInt(t.Unix(), 10), nil
}

// FormatTimestamp converts a Unix timestamp string to a readable UTC
// datetime. Unparseable input is returned unchanged so a bad record still
// renders something identifiable.
func FormatTimestamp(ts string) string {
	sec, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return ts
	}
	return time.Unix(int64(sec), 0).UTC().Format(dateTimeLayout) + " UTC"
}

// dateKey floors an epoch value to its UTC calendar date.
func dateKey(epoch float64) string {
	return time.Unix(int64(epoch), 0).UTC().Format(dayKeyLayout)
}

// FormatDayKey renders a YYYYMMDD day key as YYYY-MM-DD for display.
func FormatDayKey(key string) string {
	t, err := time.ParseInLocation(dayKeyLayout, key, time.UTC)
	if err != nil {
		return key
	}
	return t.Format(dateLayout)
}

// unsafeNameChars are characters rejected by at least one of the targets a
// conversation name ends up in: local filenames and document titles.
const unsafeNameChars = `/\:*?"<>|`

const maxNameLength = 200

// SanitizeFileName makes a conversation name safe to use as a local
// filename component.
func SanitizeFileName(name string) string {
	return sanitizeName(name)
}

// SanitizeFolderName makes a conversation name safe to use as a document
// store folder or document title.
func SanitizeFolderName(name string) string {
	return sanitizeName(name)
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(unsafeNameChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	s := strings.Trim(b.String(), " .")
	if s == "" {
		s = "untitled"
	}
	if len(s) > maxNameLength {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := maxNameLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}
