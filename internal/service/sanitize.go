package service

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const maxNameLength = 100

var (
	namePolicyOnce sync.Once
	namePolicy     *bluemonday.Policy
)

const maxSanitizeRounds = 8

// SanitizeName strips markup and surrounding whitespace from a customer
// supplied name and caps its length. The result is plain text: entities are
// decoded, and markup that only appears after decoding is stripped as well,
// so SanitizeName(SanitizeName(s)) == SanitizeName(s).
func SanitizeName(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	for i := 0; ; i++ {
		next := html.UnescapeString(nameSanitizer().Sanitize(cleaned))
		if next == cleaned {
			break
		}
		if i == maxSanitizeRounds {
			cleaned = strings.NewReplacer("<", "", ">", "").Replace(next)
			break
		}
		cleaned = next
	}
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if r := []rune(cleaned); len(r) > maxNameLength {
		cleaned = string(r[:maxNameLength])
	}
	return cleaned
}

func nameSanitizer() *bluemonday.Policy {
	namePolicyOnce.Do(func() {
		namePolicy = bluemonday.StrictPolicy()
	})
	return namePolicy
}
