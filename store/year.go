package store

// ExtractYear returns the four-digit year of a store date value, or ""
// when none can be found.
//
// The store uses two date formats:
//
//	1YYYYMMDD  exact dates, e.g. "117501010" = 10 Oct 1750
//	0(...)     irregular dates carrying a year somewhere in the text
func ExtractYear(raw string) string {
	if raw == "" {
		return ""
	}

	if raw[0] == '1' && len(raw) >= 5 {
		year := raw[1:5]
		if allDigits(year) {
			return year
		}
		return ""
	}

	if raw[0] == '0' {
		return firstYearRun(raw)
	}

	return ""
}

// firstYearRun finds the first run of exactly four digits.
func firstYearRun(s string) string {
	start := -1
	digits := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
			digits++
			continue
		}
		if digits == 4 {
			return s[start : start+4]
		}
		start = -1
		digits = 0
	}
	return ""
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
