package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips markup from user-supplied text (goal titles, custom
// target descriptions, action metadata) before it is stored.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
