/*
Package glyphres resolves Unicode code points to glyph bitmaps.

Clients load font containers into an Engine and request glyphs by family
name, size and style:

    engine := glyphres.New(conf)
    family := engine.LoadFont(ttf)
    desc := engine.CreateFontDescriptor(family+" Bold", 32)
    defer engine.DestroyFontDescriptor(desc)
    bitmaps := engine.ResolveGlyph(desc, 'A')

Fonts loaded by the client are always preferred. If none of them is able to
render a code point, the host's fonts are consulted, escalating from the
requested family to the host's font linking and finally to its script-based
font fallback. A code point nobody can render yields an empty result; it is
up to the client to substitute DefaultGlyph.

Configuration

An Engine reads the following keys from a schuko.Configuration:

    glyphres.default-family   family for descriptors requested without a name (default "Arial")
    glyphres.font-dirs        additional directories to search for host fonts
    fontconfig                path of fontconfig's fc-list, if available
    app-key                   sub-directory of the user's config dir for cached font lists

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphres

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphres.pipeline'.
func tracer() tracing.Trace {
	return tracing.Select("glyphres.pipeline")
}
