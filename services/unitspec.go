package services

import "strconv"

// ParseUnitSpec extracts the first decimal number embedded in a free-text
// unit specification such as "200 sq ft" or "25 lb bag".
// It returns false when the text contains no digits.
//
// Only the first number is used: "2 rolls of 50ft" yields 2. Callers that
// need the coverage figure must put it first in the spec text.
func ParseUnitSpec(spec string) (float64, bool) {
	start := -1
	end := -1
	sawDot := false

	for i := 0; i < len(spec); i++ {
		c := spec[i]
		switch {
		case c >= '0' && c <= '9':
			if start < 0 {
				start = i
			}
			end = i + 1
		case c == '.' && start >= 0 && !sawDot && i+1 < len(spec) && spec[i+1] >= '0' && spec[i+1] <= '9':
			sawDot = true
		default:
			if start >= 0 {
				return parseRun(spec[start:end])
			}
		}
	}

	if start < 0 {
		return 0, false
	}
	return parseRun(spec[start:end])
}

func parseRun(run string) (float64, bool) {
	v, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
