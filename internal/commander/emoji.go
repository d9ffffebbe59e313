package commander

import "strings"

var typeEmoji = map[string]string{
	"fire":     "🔥",
	"water":    "💧",
	"grass":    "🌿",
	"electric": "⚡",
	"ice":      "❄️",
	"fighting": "🥊",
	"poison":   "☠️",
	"ground":   "🌍",
	"flying":   "🌬️",
	"psychic":  "🔮",
	"bug":      "🐛",
	"rock":     "🪨",
	"ghost":    "👻",
	"dragon":   "🐉",
	"dark":     "🌑",
	"steel":    "⚙️",
	"fairy":    "✨",
	"normal":   "🔘",
}

// typeString renders "e1/e2" when both types have an emoji, otherwise
// whichever one does. Unknown or empty types render as nothing.
func typeString(type1, type2 string) string {
	e1 := typeEmoji[strings.ToLower(type1)]
	e2 := typeEmoji[strings.ToLower(type2)]
	if e1 != "" && e2 != "" {
		return e1 + "/" + e2
	}
	return e1 + e2
}

func displayName(name, type1, type2 string) string {
	if types := typeString(type1, type2); types != "" {
		return name + " " + types
	}
	return name
}
