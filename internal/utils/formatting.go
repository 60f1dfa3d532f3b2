package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMask lays digits over a mask in which every '0' is a digit slot,
// e.g. "(00) 00000-0000". Output stops at the last digit so partial input
// renders without trailing punctuation.
func FormatMask(digits, mask string) string {
	if digits == "" {
		return ""
	}

	var result strings.Builder
	i := 0
	for _, r := range mask {
		if i >= len(digits) {
			break
		}
		if r == '0' {
			result.WriteByte(digits[i])
			i++
			continue
		}
		result.WriteRune(r)
	}

	// digits beyond the mask are appended as typed
	if i < len(digits) {
		result.WriteString(digits[i:])
	}

	return result.String()
}

// TruncateString truncates a string to a maximum length with ellipsis
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}

// PadString pads a string to a specific width
func PadString(s string, width int, padChar rune) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}

	return s + strings.Repeat(string(padChar), width-n)
}

// FormatStepIndicator creates a step indicator string
func FormatStepIndicator(currentStep, totalSteps int, stepNames []string) string {
	var result strings.Builder

	for i := 0; i < totalSteps; i++ {
		if i > 0 {
			result.WriteString(" → ")
		}

		stepName := strconv.Itoa(i + 1)
		if i < len(stepNames) {
			stepName = stepNames[i]
		}

		if i == currentStep {
			result.WriteString("[" + stepName + "]")
		} else if i < currentStep {
			result.WriteString("✓")
		} else {
			result.WriteString(stepName)
		}
	}

	return result.String()
}

// FormatTimeAgo formats a time as "X ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", minutes)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
