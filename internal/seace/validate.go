package seace

import "time"

// AnioMinimo is the first year the portal's new interface has records for.
const AnioMinimo = 2019

// ValidCUI reports whether cui is exactly 7 numeric digits.
func ValidCUI(cui string) bool {
	if len(cui) != 7 {
		return false
	}
	for _, c := range cui {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ValidAnio reports whether anio falls in [AnioMinimo, current year].
// The upper bound is evaluated at call time.
func ValidAnio(anio int) bool {
	return anio >= AnioMinimo && anio <= time.Now().Year()
}
