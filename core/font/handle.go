package font

import "fmt"

// Handle identifies the font a glyph has been produced from. It is either an
// EmbeddedHandle or a HostHandle; no other implementations exist.
type Handle interface {
	fmt.Stringer
	isHandle()
}

// EmbeddedHandle refers to a face of a font loaded by the client.
type EmbeddedHandle struct {
	Face *Face
}

// HostHandle refers to a family provided by the host platform.
type HostHandle struct {
	Family string
}

func (EmbeddedHandle) isHandle() {}
func (HostHandle) isHandle()     {}

func (h EmbeddedHandle) String() string {
	if h.Face == nil {
		return "embedded:<nil>"
	}
	return "embedded:" + h.Face.String()
}

func (h HostHandle) String() string {
	return "host:" + h.Family
}
