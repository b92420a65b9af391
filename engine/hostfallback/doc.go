/*
Package hostfallback resolves code points with the fonts of the host platform.

Resolution runs through up to three stages, each of which has to deliver a
non-empty list of valid glyphs to succeed:

1. Direct: the requested family is realized by the host and asked for the
code point's glyphs.

2. Remap: the code point's codepages are determined and the host's font
linking selects a related font covering one of them. Code points outside
the Basic Multilingual Plane skip this stage.

3. Fallback: the host's script analyzer renders the code point into a
recording, with font fallback enabled. The font it selected is realized
and queried. U+0020 skips this stage.

A glyph is valid if it is none of the realized font's sentinel glyphs:
invalid, default and blank. U+0020 is exempt from the blank check, as its
glyph usually is the blank glyph.

The host's services are abstracted by interface Platform. Every native
font acquired from a platform is released on every path out of a stage.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hostfallback

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphres.host'.
func tracer() tracing.Trace {
	return tracing.Select("glyphres.host")
}
