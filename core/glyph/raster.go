package glyph

import (
	"errors"
	"image"
	"image/draw"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Metrics are the placement metrics of a rendered glyph, in pixels.
type Metrics struct {
	BearingX int // left edge of the bitmap, relative to the pen position
	BearingY int // top edge of the bitmap, above the baseline
	Advance  int // pen advance after the glyph
}

// MaxPixelSize is the largest em size Render accepts. Larger sizes overflow
// the 26.6 fixed-point arithmetic of the outline loader.
const MaxPixelSize = 16384

// ErrNoFont is returned by Render if called without a font or with a size
// outside of 1…MaxPixelSize.
var ErrNoFont = errors.New("glyph rendering needs a font and a size of 1 to 16384 pixels")

// Render rasterizes glyph `gid` of font `f` with an em size of `ppem` pixels.
// The returned coverage spans the pixel-aligned bounds of the glyph's outline.
// Glyphs without contours (spaces) yield an empty coverage and a valid advance.
//
// Callers must not share `buf` between goroutines.
func Render(f *sfnt.Font, buf *sfnt.Buffer, gid sfnt.GlyphIndex, ppem int) (Coverage, Metrics, error) {
	var m Metrics
	if f == nil || ppem <= 0 || ppem > MaxPixelSize {
		return Coverage{}, m, ErrNoFont
	}
	size := fixed.I(ppem)
	adv, err := f.GlyphAdvance(buf, gid, size, xfont.HintingNone)
	if err != nil {
		return Coverage{}, m, err
	}
	m.Advance = adv.Round()
	// segments are only valid until buf is used again
	segs, err := f.LoadGlyph(buf, gid, size, nil)
	if err != nil {
		return Coverage{}, m, err
	}
	if len(segs) == 0 {
		return Coverage{Levels: FullCoverage}, m, nil
	}
	box := bounds(segs)
	minX, minY := box.Min.X.Floor(), box.Min.Y.Floor()
	w, h := box.Max.X.Ceil()-minX, box.Max.Y.Ceil()-minY
	if w <= 0 || h <= 0 {
		return Coverage{Levels: FullCoverage}, m, nil
	}
	tx, ty := float32(-minX), float32(-minY)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return tx + float32(p.X)/64, ty + float32(p.Y)/64
	}
	rast := vector.NewRasterizer(w, h)
	rast.DrawOp = draw.Src
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			rast.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			rast.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			rast.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			x3, y3 := pt(seg.Args[2])
			rast.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	// sfnt coordinates grow downwards, so the top row lies at -minY above the baseline
	m.BearingX = minX
	m.BearingY = -minY
	return Coverage{
		Pix:    mask.Pix,
		Width:  w,
		Height: h,
		Stride: mask.Stride,
		Levels: FullCoverage,
	}, m, nil
}

// bounds returns the bounding box of all on- and off-curve points of a glyph's
// segments. Control points may stretch the box a little beyond the ink.
func bounds(segs sfnt.Segments) fixed.Rectangle26_6 {
	var box fixed.Rectangle26_6
	first := true
	for _, seg := range segs {
		n := 1
		switch seg.Op {
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		for _, p := range seg.Args[:n] {
			if first {
				box.Min, box.Max = p, p
				first = false
				continue
			}
			if p.X < box.Min.X {
				box.Min.X = p.X
			}
			if p.Y < box.Min.Y {
				box.Min.Y = p.Y
			}
			if p.X > box.Max.X {
				box.Max.X = p.X
			}
			if p.Y > box.Max.Y {
				box.Max.Y = p.Y
			}
		}
	}
	return box
}
