package amadeus

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upstream dictionaries spell names in capitals ("AMERICAN AIRLINES").
var titler = cases.Title(language.English)

// titleCase renders an upper-case upstream name for display.
// Mixed-case input is returned unchanged.
func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s != strings.ToUpper(s) {
		return s
	}
	return titler.String(s)
}

// carrierNames title-cases the carriers dictionary. It never returns nil.
func carrierNames(dict map[string]string) map[string]string {
	names := make(map[string]string, len(dict))
	for code, name := range dict {
		names[code] = titleCase(name)
	}
	return names
}
