package hostfallback

import (
	"unicode/utf8"

	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/glyph"
)

// Options switch the optional resolution stages on.
type Options struct {
	Remap    bool // try the host's font linking
	Fallback bool // try the host's script analyzer
}

// Resolution is the outcome of a successful resolution: the family which
// covers a code point and the glyphs it produces for it.
type Resolution struct {
	Family string
	Glyphs []GlyphIndex
}

// Resolver resolves code points with host fonts.
type Resolver struct {
	platform Platform
}

// NewResolver creates a resolver for a host platform.
func NewResolver(p Platform) *Resolver {
	return &Resolver{platform: p}
}

// Resolve finds a host family and its glyphs for code point cp, trying the
// direct, remap and fallback stages in turn. It returns false if no stage
// succeeds. Failing host services end the current stage only.
func (r *Resolver) Resolve(d font.Descriptor, cp rune, opts Options) (Resolution, bool) {
	if r == nil || r.platform == nil || !utf8.ValidRune(cp) {
		return Resolution{}, false
	}
	main, err := r.platform.CreateFont(LogicalFontFor(d))
	if err != nil {
		tracer().Infof("host cannot realize %s: %v", d, err)
		return Resolution{}, false
	}
	defer main.Release()
	if res, ok := r.query(main, cp, d.Name); ok {
		tracer().Debugf("%#U resolved directly with %s", cp, res.Family)
		return res, true
	}
	var remapped NativeFont
	if opts.Remap && cp <= 0xffff { // needs a single UTF-16 code unit
		if remapped = r.remap(main, cp); remapped != nil {
			defer remapped.Release()
			if res, ok := r.query(remapped, cp, remapped.Logical().Family); ok {
				tracer().Debugf("%#U resolved by font linking with %s", cp, res.Family)
				return res, true
			}
		}
	}
	if opts.Fallback && cp != ' ' {
		probe := main
		if remapped != nil {
			probe = remapped
		}
		if res, ok := r.fallback(probe, cp); ok {
			tracer().Debugf("%#U resolved by font fallback with %s", cp, res.Family)
			return res, true
		}
	}
	tracer().Debugf("no host font for %#U", cp)
	return Resolution{}, false
}

// query asks a realized font for the glyphs of cp and checks them against the
// font's sentinel glyphs. The family of the result is the one the host
// reports for the font, or requested if that is empty.
func (r *Resolver) query(nf NativeFont, cp rune, requested string) (Resolution, bool) {
	glyphs, err := r.platform.ShapeCharacter(nf, cp)
	if err != nil || len(glyphs) == 0 {
		return Resolution{}, false
	}
	props, err := r.platform.FontProperties(nf)
	if err != nil {
		tracer().Debugf("no font properties for %s: %v", nf.Logical(), err)
		return Resolution{}, false
	}
	for _, g := range glyphs {
		if g == props.Invalid || g == props.Default || (cp != ' ' && g == props.Blank) {
			return Resolution{}, false
		}
	}
	family := nf.Logical().Family
	if family == "" {
		family = requested
	}
	return Resolution{Family: family, Glyphs: glyphs}, true
}

func (r *Resolver) remap(main NativeFont, cp rune) NativeFont {
	mask, err := r.platform.MapCodepage(cp)
	if err != nil {
		tracer().Debugf("no codepages for %#U: %v", cp, err)
		return nil
	}
	linked, err := r.platform.LinkFont(mask, main)
	if err != nil {
		tracer().Debugf("no linked font for codepages %#x: %v", uint32(mask), err)
		return nil
	}
	return linked
}

func (r *Resolver) fallback(probe NativeFont, cp rune) (Resolution, bool) {
	rec := &Recording{}
	if err := r.platform.AnalyzeWithRecording(cp, probe, rec); err != nil {
		tracer().Debugf("script analysis of %#U failed: %v", cp, err)
		return Resolution{}, false
	}
	lf, ok := rec.SelectedFont()
	if !ok {
		return Resolution{}, false
	}
	nf, err := r.platform.CreateFont(lf)
	if err != nil {
		tracer().Debugf("host cannot realize fallback font %s: %v", lf, err)
		return Resolution{}, false
	}
	defer nf.Release()
	return r.query(nf, cp, lf.Family)
}

// RasterizeByIndex renders glyph gid of a host family at the size and style
// of descriptor d. It returns nil if the host cannot render the glyph.
// Glyphs without coverage data are returned as NoBitmapData.
func (r *Resolver) RasterizeByIndex(family string, d font.Descriptor, gid GlyphIndex) *glyph.Bitmap {
	if r == nil || r.platform == nil {
		return nil
	}
	lf := LogicalFontFor(d)
	lf.Family = family
	nf, err := r.platform.CreateFont(lf)
	if err != nil {
		tracer().Infof("host cannot realize %s: %v", lf, err)
		return nil
	}
	defer nf.Release()
	ol, err := r.platform.RasterizeGlyphOutline(nf, gid)
	if err != nil {
		tracer().Debugf("host cannot render glyph %d of %s: %v", gid, family, err)
		return nil
	}
	source := font.HostHandle{Family: family}
	if len(ol.Data) == 0 {
		bm := glyph.Empty(ol.CellIncX)
		bm.Source = source
		return bm
	}
	if ol.BlackBoxX == 0 || ol.BlackBoxY == 0 {
		return nil
	}
	stride := ol.Stride
	if stride <= 0 {
		stride = (int(ol.BlackBoxX) + 3) &^ 3
	}
	cov := glyph.Coverage{
		Pix:    ol.Data,
		Width:  int(ol.BlackBoxX),
		Height: len(ol.Data) / stride, // trust the data, not the black box
		Stride: stride,
		Levels: ol.Levels,
	}
	bm := glyph.FromCoverage(cov, glyph.Metrics{
		BearingX: ol.OriginX,
		BearingY: ol.OriginY,
		Advance:  ol.CellIncX,
	})
	bm.Source = source
	return bm
}

// ResolveGlyphs resolves cp with host fonts and renders every glyph of the
// resolution. Glyphs failing to render are left out, so the result may be
// empty even if resolution succeeded.
func (r *Resolver) ResolveGlyphs(d font.Descriptor, cp rune, opts Options) []*glyph.Bitmap {
	res, ok := r.Resolve(d, cp, opts)
	if !ok {
		return nil
	}
	emoji := IsEmoji(cp)
	bitmaps := make([]*glyph.Bitmap, 0, len(res.Glyphs))
	for _, gid := range res.Glyphs {
		if bm := r.RasterizeByIndex(res.Family, d, gid); bm != nil {
			bm.Emoji = emoji
			bitmaps = append(bitmaps, bm)
		}
	}
	return bitmaps
}
