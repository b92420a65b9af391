package glyphres

import (
	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/glyph"
	"github.com/npillmayer/glyphres/engine/hostfallback"
)

// Host fonts are consulted with all escalation stages.
var hostStages = hostfallback.Options{Remap: true, Fallback: true}

// resolve tries the client's fonts first. Only if none of them renders cp,
// the descriptor is re-routed to the host's fonts.
func (e *Engine) resolve(d font.Descriptor, cp rune) []*glyph.Bitmap {
	if d.Route == font.RouteEmbedded {
		if face, bm := e.registry.FindBestFace(d, cp); bm != nil {
			tracer().Debugf("%#U rendered by %s", cp, face)
			return []*glyph.Bitmap{bm}
		}
		d = d.ForHost()
	}
	bitmaps := e.host.ResolveGlyphs(d, cp, hostStages)
	if len(bitmaps) == 0 {
		tracer().Infof("no font renders %#U for %s", cp, d)
	}
	return bitmaps
}
