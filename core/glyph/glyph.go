package glyph

import (
	"fmt"

	"github.com/npillmayer/glyphres/core/font"
)

// ErrorCode tags a glyph bitmap result.
type ErrorCode int

//go:generate stringer -type=ErrorCode
const (
	Success      ErrorCode = iota // bitmap carries visible pixels
	InvalidGlyph                  // glyph could not be resolved
	NoBitmapData                  // glyph exists but is blank, e.g. a space
)

func (c ErrorCode) String() string {
	switch c {
	case Success:
		return "Success"
	case InvalidGlyph:
		return "InvalidGlyph"
	case NoBitmapData:
		return "NoBitmapData"
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Bitmap is the result of resolving a code point to a glyph: RGBA pixels
// plus the metrics needed to place them.
//
// Code is Success if and only if Pix is non-nil and Width*Height > 0.
// NoBitmapData means the glyph exists but has nothing to show; clients must not
// treat it as a lookup failure.
type Bitmap struct {
	Code     ErrorCode
	Pix      []byte // RGBA, 4 bytes per pixel, rows of Width*4 bytes
	Width    uint32
	Height   uint32
	BearingX int // left edge relative to the pen position
	BearingY int // top edge above the baseline
	Advance  int // horizontal advance in pixels
	Emoji    bool
	Source   font.Handle // which font produced this glyph
}

func (b *Bitmap) String() string {
	if b == nil {
		return "<no glyph>"
	}
	src := "?"
	if b.Source != nil {
		src = b.Source.String()
	}
	return fmt.Sprintf("glyph[%s %dx%d bearing=(%d,%d) adv=%d from %s]", b.Code,
		b.Width, b.Height, b.BearingX, b.BearingY, b.Advance, src)
}

// Empty creates a NoBitmapData result for a glyph without visible pixels.
func Empty(advance int) *Bitmap {
	return &Bitmap{Code: NoBitmapData, Advance: advance}
}

// FromCoverage expands a coverage buffer into a bitmap result. If the coverage
// has no pixels, the result is tagged NoBitmapData and bearings are reset to zero.
func FromCoverage(cov Coverage, m Metrics) *Bitmap {
	if cov.Empty() {
		return Empty(m.Advance)
	}
	return &Bitmap{
		Code:     Success,
		Pix:      Expand(cov),
		Width:    uint32(cov.Width),
		Height:   uint32(cov.Height),
		BearingX: m.BearingX,
		BearingY: m.BearingY,
		Advance:  m.Advance,
	}
}

// DefaultGray is the value of every channel of the default glyph.
const DefaultGray = 0x80

// Default returns a placeholder glyph for cases where resolution failed
// completely: a 4×4 square of mid-gray. The caller owns the returned bitmap.
func Default() *Bitmap {
	const side = 4
	pix := make([]byte, side*side*4)
	for i := range pix {
		pix[i] = DefaultGray
	}
	return &Bitmap{
		Code:    Success,
		Pix:     pix,
		Width:   side,
		Height:  side,
		Advance: side,
	}
}
