/*
Package glyph holds glyph bitmaps as they are handed out to clients.

Rasterizers (the embedded one as well as host platforms) produce coverage
buffers: 8 bits per pixel, each value denoting how much of the pixel is
covered by the glyph's outline. Clients want RGBA, so every coverage
buffer is expanded to four channels before it leaves the resolution pipeline.

A Bitmap owns its pixel buffer. No buffer is shared between two calls.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyph

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphres.glyph'.
func tracer() tracing.Trace {
	return tracing.Select("glyphres.glyph")
}
