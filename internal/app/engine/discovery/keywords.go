package discovery

import "strings"

// Flavor families a profile may ask for.
const (
	FlavorSweet  = "sweet"
	FlavorSpicy  = "spicy"
	FlavorFruity = "fruity"
	FlavorOaky   = "oaky"
)

// Keywords maps each flavor family to the note words that signal it.
var Keywords = map[string][]string{
	FlavorSweet:  {"vanilla", "caramel", "honey", "butterscotch", "toffee", "brown sugar", "maple", "sweet"},
	FlavorSpicy:  {"pepper", "cinnamon", "clove", "nutmeg", "ginger", "rye", "spice", "spicy"},
	FlavorFruity: {"cherry", "apple", "orange", "citrus", "berry", "raisin", "fig", "fruit"},
	FlavorOaky:   {"oak", "wood", "char", "smoke", "toasted", "cedar", "leather", "tobacco"},
}

// FlavorHits counts how many of the flavor's keywords appear in text.
// Each keyword counts once regardless of repetition. An unknown flavor
// scores zero.
func FlavorHits(flavor, text string) int {
	if text == "" {
		return 0
	}
	text = strings.ToLower(text)
	n := 0
	for _, kw := range Keywords[flavor] {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
