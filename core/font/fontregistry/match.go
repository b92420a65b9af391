package fontregistry

import (
	"path"
	"strings"

	"github.com/npillmayer/glyphres/core/font"
	xfont "golang.org/x/image/font"
)

// NormalizeFontname normalizes a family name for lookups: surrounding white
// space and font file extensions are removed, runs of blanks, dashes and underscores
// collapse to a single blank, and letters are lower-cased.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	switch strings.ToLower(path.Ext(fname)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		fname = fname[:len(fname)-4]
	}
	fname = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, fname)
	return strings.ToLower(strings.Join(strings.Fields(fname), " "))
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") || strings.Contains(fontfilename, "oblique") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// StyleFromFilename converts the guess of GuessStyleAndWeight to style flags.
func StyleFromFilename(fontfilename string) font.StyleFlags {
	style, weight := GuessStyleAndWeight(fontfilename)
	var s font.StyleFlags
	if style != xfont.StyleNormal {
		s |= font.StyleItalic
	}
	if weight >= xfont.WeightSemiBold {
		s |= font.StyleBold
	}
	return s
}

// MatchConfidence is a type for expressing the confidence level of font matching.
type MatchConfidence int

const (
	NoConfidence      MatchConfidence = 0
	LowConfidence     MatchConfidence = 2
	HighConfidence    MatchConfidence = 3
	PerfectConfidence MatchConfidence = 4
)

// MatchStyle rates how well a face's style flags fit a requested style.
// Slant and weight are rated separately and averaged.
func MatchStyle(have, want font.StyleFlags) MatchConfidence {
	rate := func(h, w bool) MatchConfidence {
		if h == w {
			return PerfectConfidence
		}
		return LowConfidence
	}
	s := rate(have.IsItalic(), want.IsItalic())
	w := rate(have.IsBold(), want.IsBold())
	return (s + w) / 2
}

// ClosestMatch returns the index of the style in a list of candidates which
// fits a requested style best, together with the confidence of the match.
// Earlier candidates win ties. If the list is empty, returns -1 and NoConfidence.
func ClosestMatch(candidates []font.StyleFlags, want font.StyleFlags) (int, MatchConfidence) {
	best, confidence := -1, NoConfidence
	for i, have := range candidates {
		if c := MatchStyle(have, want); c > confidence {
			best, confidence = i, c
		}
	}
	return best, confidence
}
