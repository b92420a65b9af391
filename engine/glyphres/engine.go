package glyphres

import (
	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/font/fontregistry"
	"github.com/npillmayer/glyphres/core/glyph"
	"github.com/npillmayer/glyphres/core/locate/systemfonts"
	"github.com/npillmayer/glyphres/engine/hostfallback"
	"github.com/npillmayer/glyphres/engine/hostfallback/portable"
	"github.com/npillmayer/schuko"
)

// Engine is a glyph resolver. It owns the fonts loaded by a client and a
// cache of the host's fonts. An Engine is safe for concurrent use.
type Engine struct {
	registry *fontregistry.Registry
	sysfonts *systemfonts.Cache
	platform hostfallback.Platform
	host     *hostfallback.Resolver
	refresh  func() // re-enumerates host fonts
}

// refresher is implemented by platforms which cache data derived from host fonts.
type refresher interface {
	Refresh()
}

// Option configures an Engine.
type Option func(*Engine)

// WithPlatform sets the host services used for host font fallback.
// The default is a portable platform on top of the host's font files.
func WithPlatform(p hostfallback.Platform) Option {
	return func(e *Engine) {
		e.platform = p
	}
}

// New creates an engine without any client fonts. conf may be nil.
func New(conf schuko.Configuration, opts ...Option) *Engine {
	family := font.DefaultFamily
	if conf != nil && conf.IsSet("glyphres.default-family") {
		family = conf.GetString("glyphres.default-family")
	}
	e := &Engine{registry: fontregistry.NewRegistry(family)}
	for _, opt := range opts {
		opt(e)
	}
	if e.platform == nil {
		e.platform = portable.New(systemfonts.NewCache(conf))
	}
	if p, ok := e.platform.(*portable.Platform); ok {
		e.sysfonts = p.Fonts()
		e.refresh = p.Refresh
	} else {
		e.sysfonts = systemfonts.NewCache(conf)
		e.refresh = e.sysfonts.Refresh
		if r, ok := e.platform.(refresher); ok {
			e.refresh = func() {
				e.sysfonts.Refresh()
				r.Refresh()
			}
		}
	}
	e.host = hostfallback.NewResolver(e.platform)
	tracer().Debugf("glyph resolver created, default family is %s", family)
	return e
}

// LoadFont loads a font container (TTF, OTF or a collection of those) and
// returns the family name it is registered under. It returns "" if blob does
// not contain a usable face. The engine keeps a copy of blob.
func (e *Engine) LoadFont(blob []byte) string {
	return e.registry.Load(blob)
}

// CreateFontDescriptor creates a descriptor for a font request like
// "Times New Roman Bold Italic" at a pixel size. Trailing "Bold" and "Italic"
// tokens select the style; an empty name selects the default family.
func (e *Engine) CreateFontDescriptor(name string, size uint32) *font.Descriptor {
	d := e.registry.Create(name, size)
	return &d
}

// DestroyFontDescriptor releases a descriptor created by CreateFontDescriptor.
func (e *Engine) DestroyFontDescriptor(d *font.Descriptor) {
	e.registry.Destroy(d)
}

// ResolveGlyph resolves a code point to glyph bitmaps. Client fonts yield at
// most one bitmap, host fonts may yield several (e.g., for decomposed
// characters). An empty result means that no font can render cp.
func (e *Engine) ResolveGlyph(d *font.Descriptor, cp rune) []*glyph.Bitmap {
	if d == nil {
		return nil
	}
	return e.resolve(*d, cp)
}

// DefaultGlyph returns a placeholder for code points which could not be
// resolved. The caller owns the bitmap.
func (e *Engine) DefaultGlyph() *glyph.Bitmap {
	return glyph.Default()
}

// SystemFonts lists the host's font families. If refresh is set, host fonts
// are enumerated again, otherwise the result of a previous enumeration is
// re-used.
func (e *Engine) SystemFonts(refresh bool) []systemfonts.FontInfo {
	if refresh {
		e.refresh()
	}
	return e.sysfonts.Fonts()
}

// Families returns the families of all fonts loaded by the client, in load order.
func (e *Engine) Families() []string {
	return e.registry.Families()
}
