package portable

import (
	"path"
	"strings"
	"sync"

	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/glyphres/core"
	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/font/fontregistry"
	"github.com/npillmayer/glyphres/core/glyph"
	"github.com/npillmayer/glyphres/core/locate/systemfonts"
	"github.com/npillmayer/glyphres/engine/glyphing/harfbuzz"
	"github.com/npillmayer/glyphres/engine/hostfallback"
	"golang.org/x/image/font/sfnt"
)

// Platform provides host services on top of the host's font files.
// A Platform is safe for concurrent use.
type Platform struct {
	mu        sync.Mutex // guards the faces handed out by the font cache
	fonts     *systemfonts.Cache
	shaper    *harfbuzz.Shaper
	links     map[hostfallback.CodepageMask][]string
	fallbacks map[hblang.Script]scriptFallback
	live      int // realized fonts not yet released
}

var _ hostfallback.Platform = (*Platform)(nil)

// New creates a platform for the fonts of a host. If fonts is nil, a fresh
// cache without fontconfig support is used.
func New(fonts *systemfonts.Cache) *Platform {
	if fonts == nil {
		fonts = systemfonts.NewCache(nil)
	}
	return &Platform{
		fonts:     fonts,
		shaper:    harfbuzz.NewShaper(),
		links:     linkedFamilies,
		fallbacks: scriptFallbacks,
	}
}

// Fonts returns the host font cache of the platform.
func (p *Platform) Fonts() *systemfonts.Cache {
	return p.fonts
}

// Refresh enumerates the host fonts again and drops the fonts cached by the shaper.
// Fonts realized before remain usable.
func (p *Platform) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fonts.Refresh()
	p.shaper.Forget()
}

// Families which are substituted by metric-compatible ones if missing.
var substitutes = map[string][]string{
	"arial":           {"Liberation Sans", "Arimo", "Helvetica"},
	"helvetica":       {"Liberation Sans", "Arimo", "Arial"},
	"times new roman": {"Liberation Serif", "Tinos", "Times"},
	"times":           {"Liberation Serif", "Tinos", "Times New Roman"},
	"courier new":     {"Liberation Mono", "Cousine", "Courier"},
	"courier":         {"Liberation Mono", "Cousine", "Courier New"},
	"segoe ui":        {"Noto Sans", "DejaVu Sans", "Helvetica Neue"},
}

// Families to realize if neither the requested family nor a substitute is installed.
var defaultSans = []string{
	"DejaVu Sans", "Liberation Sans", "Noto Sans", "Arial", "Helvetica",
	systemfonts.BuiltinFamily,
}

// nativeFont is a font realized from a host face.
type nativeFont struct {
	logical    hostfallback.LogicalFont
	info       systemfonts.FaceInfo
	face       *font.Face
	collection bool
	released   bool
	p          *Platform
}

func (f *nativeFont) Logical() hostfallback.LogicalFont {
	return f.logical
}

func (f *nativeFont) Release() {
	f.p.mu.Lock()
	defer f.p.mu.Unlock()
	if f.released {
		tracer().Errorf("font %s released twice", f.logical)
		return
	}
	f.released = true
	f.p.live--
}

// CreateFont realizes a logical font. The realized font reports the family
// actually selected, which is a substitute if the requested family is not
// installed.
func (p *Platform) CreateFont(lf hostfallback.LogicalFont) (hostfallback.NativeFont, error) {
	want := styleOf(lf)
	candidates := []string{lf.Family}
	candidates = append(candidates, substitutes[fontregistry.NormalizeFontname(lf.Family)]...)
	candidates = append(candidates, defaultSans...)
	for _, family := range candidates {
		if nf := p.realize(family, want, lf.Size); nf != nil {
			if family != lf.Family {
				tracer().Debugf("font %s substituted by %s", lf, nf.logical.Family)
			}
			return nf, nil
		}
	}
	return nil, core.Error(core.EUNAVAILABLE, "no host font available for %s", lf)
}

// realize opens the face of an installed family closest to a style.
func (p *Platform) realize(family string, want font.StyleFlags, size uint32) *nativeFont {
	if strings.TrimSpace(family) == "" {
		return nil
	}
	info, ok := p.fonts.Lookup(family)
	if !ok || len(info.Faces) == 0 {
		return nil
	}
	inx, confidence := fontregistry.ClosestMatch(info.Styles(), want)
	if inx < 0 {
		return nil
	}
	fi := info.Faces[inx]
	p.mu.Lock()
	defer p.mu.Unlock()
	face, err := p.fonts.Open(fi)
	if err != nil {
		tracer().Debugf("cannot open face of %s: %v", family, err)
		return nil
	}
	tracer().Debugf("realized %s %s from %s (confidence %d)", info.Family, want, fi.Path, confidence)
	p.live++
	return &nativeFont{
		logical: hostfallback.LogicalFont{
			Family: info.Family,
			Size:   size,
			Bold:   face.Style.IsBold(),
			Italic: face.Style.IsItalic(),
		},
		info:       fi,
		face:       face,
		collection: isCollection(fi.Path) || face.FaceIndex > 0,
		p:          p,
	}
}

func (p *Platform) native(nf hostfallback.NativeFont) (*nativeFont, error) {
	f, ok := nf.(*nativeFont)
	if !ok || f == nil || f.p != p {
		return nil, core.Error(core.EINVALID, "font has not been realized by this platform")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if f.released {
		return nil, core.Error(core.EINVALID, "font %s has already been released", f.logical)
	}
	return f, nil
}

// ShapeCharacter converts a single code point to glyphs of a realized font.
// Fonts from collections are not supported by the shaper and use the cmap only.
func (p *Platform) ShapeCharacter(nf hostfallback.NativeFont, r rune) ([]hostfallback.GlyphIndex, error) {
	f, err := p.native(nf)
	if err != nil {
		return nil, err
	}
	if !f.collection {
		if glyphs, err := p.shape(f, r); err == nil {
			return glyphs, nil
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return []hostfallback.GlyphIndex{hostfallback.GlyphIndex(f.face.GlyphIndex(r))}, nil
}

func (p *Platform) shape(f *nativeFont, r rune) ([]hostfallback.GlyphIndex, error) {
	data, err := p.fonts.Data(f.info)
	if err != nil {
		return nil, err
	}
	shaped, err := p.shaper.ShapeRune(f.info.Path, data, r)
	if err != nil {
		tracer().Debugf("shaper rejects %s: %v", f.info.Path, err)
		return nil, err
	}
	glyphs := make([]hostfallback.GlyphIndex, len(shaped))
	for i, g := range shaped {
		glyphs[i] = hostfallback.GlyphIndex(g.GID)
	}
	return glyphs, nil
}

// FontProperties returns the sentinel glyphs of a realized font:
// 0xFFFF for unmapped code points, glyph 0 (.notdef) as the default glyph,
// and the glyph of U+0020 as the blank glyph.
func (p *Platform) FontProperties(nf hostfallback.NativeFont) (hostfallback.FontProperties, error) {
	f, err := p.native(nf)
	if err != nil {
		return hostfallback.FontProperties{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return hostfallback.FontProperties{
		Invalid: 0xffff,
		Default: 0,
		Blank:   hostfallback.GlyphIndex(f.face.GlyphIndex(' ')),
	}, nil
}

// RasterizeGlyphOutline renders a glyph of a realized font at the font's size.
func (p *Platform) RasterizeGlyphOutline(nf hostfallback.NativeFont, gid hostfallback.GlyphIndex) (hostfallback.Outline, error) {
	f, err := p.native(nf)
	if err != nil {
		return hostfallback.Outline{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	cov, m, err := glyph.Render(f.face.SFNT, f.face.Buffer(), sfnt.GlyphIndex(gid), int(f.logical.Size))
	if err != nil {
		return hostfallback.Outline{}, core.WrapError(err, core.EINVALID,
			"cannot render glyph %d of %s", gid, f.logical.Family)
	}
	ol := hostfallback.Outline{
		Levels:   cov.Levels,
		CellIncX: m.Advance,
	}
	if cov.Empty() {
		return ol, nil
	}
	ol.Data = cov.Pix
	ol.Stride = cov.Stride
	ol.BlackBoxX = uint32(cov.Width)
	ol.BlackBoxY = uint32(cov.Height)
	ol.OriginX = m.BearingX
	ol.OriginY = m.BearingY
	return ol, nil
}

func styleOf(lf hostfallback.LogicalFont) font.StyleFlags {
	s := font.StyleRegular
	if lf.Bold {
		s |= font.StyleBold
	}
	if lf.Italic {
		s |= font.StyleItalic
	}
	return s
}

func isCollection(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".ttc", ".otc":
		return true
	}
	return false
}
