package utils

import "unicode"

// latinThreshold is the minimum fraction of Latin-script letters a title
// must contain to be shown. The boundary is inclusive.
const latinThreshold = 0.6

// Displayable reports whether a title is predominantly written in Latin
// script. The upstream catalog has no such filter, so this runs client-side
// to drop titles the target audience cannot read (cyrillic, kanji, etc.).
// Titles without any letter at all (empty, digits, punctuation) are never
// displayable.
func Displayable(title string) bool {
	var letters, latin int
	for _, r := range title {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Latin, r) {
			latin++
		}
	}

	if letters == 0 {
		return false
	}

	return float64(latin)/float64(letters) >= latinThreshold
}
