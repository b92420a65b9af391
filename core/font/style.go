package font

import (
	"strings"
)

// StyleFlags is a bit set of the style properties a face declares.
type StyleFlags uint8

const (
	StyleBold StyleFlags = 1 << iota
	StyleItalic
)

// StyleRegular is the empty style set.
const StyleRegular StyleFlags = 0

// IsBold is a predicate.
func (s StyleFlags) IsBold() bool { return s&StyleBold != 0 }

// IsItalic is a predicate.
func (s StyleFlags) IsItalic() bool { return s&StyleItalic != 0 }

func (s StyleFlags) String() string {
	switch s {
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleBold | StyleItalic:
		return "bold-italic"
	}
	return "regular"
}

// GuessStyle trys to guess style flags from a subfamily name like "Bold Italic",
// "SemiBold Oblique" or "Black".
func GuessStyle(subfamily string) StyleFlags {
	sub := strings.ToLower(subfamily)
	var s StyleFlags
	if strings.Contains(sub, "italic") || strings.Contains(sub, "oblique") {
		s |= StyleItalic
	}
	for _, w := range []string{"bold", "black", "heavy"} {
		if strings.Contains(sub, w) {
			s |= StyleBold
			break
		}
	}
	return s
}
