/*
Package portable implements the host services of package hostfallback in
pure Go, for hosts without a platform shaping engine.

Host fonts are taken from a systemfonts.Cache. Realizing a logical font
picks the installed face closest to the requested family and style,
substituting metric-compatible families for well-known Windows families.
Single code points are converted to glyphs by HarfBuzz. Codepages are
computed from the legacy encodings of golang.org/x/text, font linking
consults a table of families per codepage, and script analysis selects
fallback fonts by Unicode script, the way Uniscribe does.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package portable

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphres.host'.
func tracer() tracing.Trace {
	return tracing.Select("glyphres.host")
}
