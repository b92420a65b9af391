package hostfallback

import (
	"unicode"

	"github.com/npillmayer/uax/emoji"
)

// IsEmoji is a predicate: is r displayed as an emoji by default?
// Pictographs from the supplementary planes count as emoji even without
// default emoji presentation.
func IsEmoji(r rune) bool {
	emoji.SetupEmojisClasses()
	if unicode.Is(emoji.Emoji_Presentation, r) {
		return true
	}
	return r >= 0x1f000 && unicode.Is(emoji.Extended_Pictographic, r)
}
