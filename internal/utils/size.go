package utils

import (
	"fmt"
	"strings"
)

// sizeUnitLabels lists the lower-case unit suffixes used by the summary line.
var sizeUnitLabels = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize converts a byte total into the short human-readable form
// shown in the render summary. Values below 10 in their unit keep one
// decimal place; negative totals collapse to "0b".
func FormatFileSize(byteTotal int64) string {
	if byteTotal < 0 {
		return "0b"
	}
	scaledValue := float64(byteTotal)
	unitIndex := 0
	for scaledValue >= 1024 && unitIndex < len(sizeUnitLabels)-1 {
		scaledValue /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", byteTotal)
	}
	if scaledValue < 10 {
		formattedValue := strings.TrimSuffix(fmt.Sprintf("%.1f", scaledValue), ".0")
		return formattedValue + sizeUnitLabels[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", scaledValue, sizeUnitLabels[unitIndex])
}
