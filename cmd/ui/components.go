package ui

import (
	"strings"
)

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	var parts []string
	parts = append(parts, Green(IconCheckmark), Green(message))

	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}

	return strings.Join(parts, " ")
}

// RefStatusLine colors a ref report line by its leading status word.
// The text itself is left intact so the line stays machine readable.
func RefStatusLine(line string) string {
	status, rest, _ := strings.Cut(line, " ")
	switch status {
	case "ok":
		return Green(status) + " " + rest
	case "ng":
		return Red(status) + " " + rest
	default:
		return line
	}
}

// MRStatusBadge renders a merge request status with its icon
func MRStatusBadge(status string) string {
	switch status {
	case "open":
		return OpenStyle.Render(IconOpen + " " + status)
	case "closed":
		return ClosedStyle.Render(IconCross + " " + status)
	case "merged":
		return MergedStyle.Render(IconMerged + " " + status)
	default:
		return status
	}
}

// ErrorMessage formats an error message in red
func ErrorMessage(message string) string {
	return Red(message)
}
