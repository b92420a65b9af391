/*
Package embedded rasterizes glyphs from fonts the client has loaded itself.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package embedded

import (
	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/glyph"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphres.font'.
func tracer() tracing.Trace {
	return tracing.Select("glyphres.font")
}

// Rasterize renders code point cp from face at an em size of px pixels.
//
// If the face does not map cp, or the glyph cannot be loaded, Rasterize
// returns nil. Glyphs without outlines (spaces) are returned as NoBitmapData
// with a valid advance. Results from embedded fonts never carry the emoji flag.
func Rasterize(face *font.Face, cp rune, px uint32) *glyph.Bitmap {
	if face == nil || face.SFNT == nil || px == 0 {
		return nil
	}
	gid := face.GlyphIndex(cp)
	if gid == 0 {
		return nil
	}
	cov, m, err := glyph.Render(face.SFNT, face.Buffer(), gid, int(px))
	if err != nil {
		tracer().Debugf("cannot render glyph %d of %s: %v", gid, face, err)
		return nil
	}
	bm := glyph.FromCoverage(cov, m)
	bm.Source = font.EmbeddedHandle{Face: face}
	tracer().Debugf("rendered %#U from %s: %s", cp, face, bm)
	return bm
}
