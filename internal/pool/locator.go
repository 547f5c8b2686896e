package pool

import (
	"regexp"
	"strings"
)

const (
	languageTagMinLen = 3
	languageTagMaxLen = 256
)

var (
	hexHashPattern     = regexp.MustCompile(`^[0-9a-f]{64}$`)
	languageTagPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// Locator is the parsed form of the HASH[@LANG[@MHASH]] surface syntax.
// Language and OverlayHash are empty when their segment is absent.
type Locator struct {
	FunctionHash string
	Language     string
	OverlayHash  string
}

// ValidateHash checks that h is 64-hex-lowercase.
func ValidateHash(h string) error {
	if !hexHashPattern.MatchString(h) {
		return newErrorf(KindInvalidHash, "hash %q is not 64 lowercase hex characters", h)
	}
	return nil
}

// ValidateLanguageTag checks the tag's length and character class.
func ValidateLanguageTag(tag string) error {
	if len(tag) < languageTagMinLen || len(tag) > languageTagMaxLen {
		return newErrorf(KindInvalidLanguageTag, "language tag %q must be %d to %d characters", tag, languageTagMinLen, languageTagMaxLen)
	}
	if !languageTagPattern.MatchString(tag) {
		return newErrorf(KindInvalidLanguageTag, "language tag %q may only contain ASCII letters, digits, and hyphens", tag)
	}
	return nil
}

// ParseLocator parses the surface syntax for referring to a function or
// overlay. The language segment is validated before either hash so that a
// malformed tag is always reported as such.
func ParseLocator(s string) (Locator, error) {
	if s == "" {
		return Locator{}, newErrorf(KindInvalidLocator, "empty locator")
	}
	parts := strings.Split(s, "@")
	if len(parts) > 3 {
		return Locator{}, newErrorf(KindInvalidLocator, "locator %q has more than three @-separated segments", s)
	}

	loc := Locator{FunctionHash: parts[0]}
	if len(parts) >= 2 {
		loc.Language = parts[1]
		if err := ValidateLanguageTag(loc.Language); err != nil {
			return Locator{}, err
		}
	}
	if err := ValidateHash(loc.FunctionHash); err != nil {
		return Locator{}, err
	}
	if len(parts) == 3 {
		loc.OverlayHash = parts[2]
		if err := ValidateHash(loc.OverlayHash); err != nil {
			return Locator{}, err
		}
	}
	return loc, nil
}
