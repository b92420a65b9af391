/*
Package harfbuzz uses HarfBuzz to convert code points to glyphs of host fonts.

The host fallback resolver asks for the glyphs of a single code point at a
time; HarfBuzz applies the font's cmap and its mandatory substitutions
(e.g., for scripts with contextual forms), just as a platform shaping engine
would.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"sync"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/glyphres/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// tracer traces with key 'glyphres.host'.
func tracer() tracing.Trace {
	return tracing.Select("glyphres.host")
}

// --- Type conversion -------------------------------------------------------

// Direction is the direction to shape text in.
type Direction int

// Direction to shape text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// ScriptOf returns the script of a code point and whether the script is a
// distinct one, i.e., neither common, inherited nor unknown.
func ScriptOf(r rune) (hblang.Script, bool) {
	switch s := hblang.LookupScript(r); s {
	case hblang.Common, hblang.Inherited, hblang.Unknown:
		return s, false
	default:
		return s, true
	}
}

// DirectionOf returns the horizontal direction of a script.
func DirectionOf(s hblang.Script) Direction {
	switch s {
	case hblang.Arabic, hblang.Hebrew, hblang.Syriac, hblang.Thaana:
		return RightToLeft
	}
	return LeftToRight
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d Direction) hb.Direction {
	switch d {
	case RightToLeft:
		return hb.RightToLeft
	case TopToBottom:
		return hb.TopToBottom
	case BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// --- Shape -----------------------------------------------------------------

// Params collects shaping parameters. If Script is unset, script and direction
// are taken from the first code point with a distinct script.
type Params struct {
	Direction Direction
	Script    language.Script // 4-letter ISO 15924
	Language  language.Tag    // BCP 47 tag
}

// Glyph is a single glyph produced by the shaper.
type Glyph struct {
	GID      sfnt.GlyphIndex
	Cluster  int   // index of the first input rune this glyph stems from
	XAdvance int32 // in font units
}

// Shaper shapes text with fonts given as raw bytes. Parsed fonts are
// cached by a client-chosen key. A Shaper is safe for concurrent use.
type Shaper struct {
	sync.Mutex
	fonts map[string]*hb.Font
}

// NewShaper creates a shaper with an empty font cache.
func NewShaper() *Shaper {
	return &Shaper{fonts: make(map[string]*hb.Font)}
}

// Shape calls the HarfBuzz shaper.
//
// Shape shapes a sequence of code-points (runes), turning its Unicode characters
// into glyphs of the font in data. The font is cached under key; data is
// consulted only if key is not yet known. Collections are not supported by
// HarfBuzz's font loader; clients should fall back to a cmap lookup for them.
//
// Code points not covered by the font are returned as glyph 0 (.notdef).
func (s *Shaper) Shape(key string, data []byte, text []rune, params Params) ([]Glyph, error) {
	if len(text) == 0 {
		return nil, nil
	}
	s.Lock()
	defer s.Unlock()
	hbFont, ok := s.fonts[key]
	if !ok {
		hbFace, err := hbtt.Parse(bytes.NewReader(data), true)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "HarfBuzz cannot parse font %s", key)
		}
		hbFont = hb.NewFont(hbFace)
		s.fonts[key] = hbFont
	}
	hbBuf := hb.NewBuffer()
	hbBuf.AddRunes(text, 0, len(text))
	var none language.Script
	if params.Script != none {
		hbBuf.Props.Script = Script4HB(params.Script)
		hbBuf.Props.Direction = Direction4HB(params.Direction)
		if params.Language != language.Und {
			hbBuf.Props.Language = Lang4HB(params.Language)
		}
	} else {
		hbBuf.Props = segmentProperties(text)
	}
	hbBuf.Shape(hbFont, nil)
	glyphs := make([]Glyph, len(hbBuf.Info))
	for i, ginfo := range hbBuf.Info {
		glyphs[i] = Glyph{
			GID:      sfnt.GlyphIndex(ginfo.Glyph),
			Cluster:  ginfo.Cluster,
			XAdvance: int32(hbBuf.Pos[i].XAdvance),
		}
	}
	tracer().Debugf("shaped %d rune(s) into %d glyph(s) with %s", len(text), len(glyphs), key)
	return glyphs, nil
}

func segmentProperties(text []rune) hb.SegmentProperties {
	script := hblang.Latin
	for _, r := range text {
		if s, distinct := ScriptOf(r); distinct {
			script = s
			break
		}
	}
	return hb.SegmentProperties{
		Script:    script,
		Direction: Direction4HB(DirectionOf(script)),
	}
}

// ShapeRune shapes a single code point.
func (s *Shaper) ShapeRune(key string, data []byte, r rune) ([]Glyph, error) {
	return s.Shape(key, data, []rune{r}, Params{})
}

// Forget removes all cached fonts.
func (s *Shaper) Forget() {
	s.Lock()
	defer s.Unlock()
	s.fonts = make(map[string]*hb.Font)
}
