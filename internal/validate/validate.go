package validate

import (
	"regexp"
	"strings"
)

// The storefront only accepts mailbox providers we can actually deliver
// to; everything else bounces through the magic-link flow and generates
// support noise.
var allowedEmailDomains = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"outlook.com":    true,
	"hotmail.com":    true,
	"icloud.com":     true,
	"protonmail.com": true,
}

var (
	emailRe     = regexp.MustCompile(`^[\w.%+-]+@([\w.-]+\.[a-zA-Z]{2,})$`)
	phoneRe     = regexp.MustCompile(`^(\+92\s?|0)?3[0-9]{2}[-\s]?[0-9]{7}$`)
	productIDRe = regexp.MustCompile(`^[0-9]{6}$`)
)

func Email(email string) bool {
	m := emailRe.FindStringSubmatch(email)
	if m == nil {
		return false
	}
	return allowedEmailDomains[strings.ToLower(m[1])]
}

// Phone accepts Pakistani mobile numbers with or without the country
// prefix.
func Phone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// ProductID accepts the catalog's opaque 6-digit numeric identifiers.
func ProductID(id string) bool {
	return productIDRe.MatchString(strings.TrimSpace(id))
}
