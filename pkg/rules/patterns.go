package rules

import (
	"regexp"
	"strings"
)

// Matcher reports whether a value satisfies a named type.
type Matcher func(value string) bool

// space is the whitespace class of ECMAScript's \s; RE2's \s is ASCII only.
const space = `\t\n\v\f\r \x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	emailPattern = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d` + space + `-]{10,}$`)
	urlPattern   = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)

	// RE2 has no lookahead, so the password rule is the charset check plus one
	// presence check per required class.
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*#?&]{8,}$`)
	passwordLetter  = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	passwordSymbol  = regexp.MustCompile(`[@$!%*#?&]`)
)

var namedTypes = map[TypeName]Matcher{
	TypeEmail:    emailPattern.MatchString,
	TypePhone:    phonePattern.MatchString,
	TypePassword: matchPassword,
	TypeURL:      urlPattern.MatchString,
}

// LookupType returns the matcher for a named type. Names are compared case
// insensitively; unknown names report false so callers can skip the check.
func LookupType(name TypeName) (Matcher, bool) {
	key := TypeName(strings.ToLower(strings.TrimSpace(string(name))))
	if key == "" {
		return nil, false
	}
	matcher, ok := namedTypes[key]
	return matcher, ok
}

// KnownTypes lists the supported type names.
func KnownTypes() []TypeName {
	return []TypeName{TypeEmail, TypePhone, TypePassword, TypeURL}
}

func matchPassword(value string) bool {
	return passwordCharset.MatchString(value) &&
		passwordLetter.MatchString(value) &&
		passwordDigit.MatchString(value) &&
		passwordSymbol.MatchString(value)
}
