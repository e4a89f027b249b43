package util

import (
	"strings"
	"unicode"
)

const maxFileNameRunes = 255

// DisplayFileName reduces an uploaded file name to a printable base name.
// Browsers may send a full client path with either separator. It returns
// fallback when nothing usable is left.
func DisplayFileName(name, fallback string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return fallback
	}
	if runes := []rune(name); len(runes) > maxFileNameRunes {
		name = string(runes[len(runes)-maxFileNameRunes:])
	}
	return name
}
