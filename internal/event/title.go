package event

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTitleLen = 100

var (
	ErrTitleRequired = errors.New("title required")
	ErrTitleTooLong  = errors.New("title too long")
)

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// SanitizeTitle strips HTML tags and surrounding whitespace, then enforces
// the title length limit. Length is counted in runes so Arabic titles get the
// same allowance as Latin ones.
func SanitizeTitle(raw string) (string, error) {
	t := strings.TrimSpace(htmlTagRe.ReplaceAllString(raw, ""))
	if t == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(t) > maxTitleLen {
		return "", ErrTitleTooLong
	}
	return t, nil
}
