package logger

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// Field names containing one of these are treated as credentials.
	credentialMarkers = []string{"api_key", "apikey", "access_token", "token", "secret", "password", "authorization"}
)

// maskField masks a string field by its key; other strings only have
// embedded email addresses masked.
func maskField(key, val string) string {
	k := strings.ToLower(key)
	for _, m := range credentialMarkers {
		if strings.Contains(k, m) {
			return RedactSecret(val)
		}
	}
	if strings.Contains(k, "email") {
		return RedactEmail(val)
	}
	return emailPattern.ReplaceAllStringFunc(val, RedactEmail)
}

// RedactSecret keeps only the last four characters of a credential, so
// "shpat_1234abcd" becomes "****abcd". Four characters or fewer are
// masked entirely.
func RedactSecret(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 4:
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

// RedactEmail keeps the first two characters of the local part and the
// domain: "john.doe@example.com" becomes "jo***@example.com".
func RedactEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "***@***"
	}
	local, domain := email[:at], email[at+1:]
	if len(local) <= 2 {
		return "***@" + domain
	}
	return local[:2] + "***@" + domain
}
