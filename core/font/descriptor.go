package font

import (
	"fmt"
	"strings"
)

// DefaultFamily is the family used for descriptors requested without a name.
const DefaultFamily = "Arial"

// Route tells the resolution pipeline which font source a descriptor is meant for.
type Route int

const (
	RouteEmbedded     Route = iota // search fonts loaded by the client first
	RouteHostFallback              // ask the host platform
)

func (r Route) String() string {
	if r == RouteHostFallback {
		return "host"
	}
	return "embedded"
}

// Descriptor is a client's request for a font: family, pixel em size and style.
// Descriptors are plain values and never change after creation.
type Descriptor struct {
	Name   string // family name, style suffixes removed
	Size   uint32 // em size in pixels
	Bold   bool
	Italic bool
	Route  Route
}

// ParseDescriptor creates a descriptor from a requested font name such as
// "Arial Bold Italic". Trailing tokens "Bold" and "Italic" (case-sensitive)
// are removed from the name and turned into style flags. An empty request
// selects defaultFamily, or DefaultFamily if that is empty, too.
//
// Parsing is idempotent: feeding the resulting name back in strips nothing further.
func ParseDescriptor(requested string, size uint32, defaultFamily string) Descriptor {
	if defaultFamily = strings.TrimSpace(defaultFamily); defaultFamily == "" {
		defaultFamily = DefaultFamily
	}
	d := Descriptor{Size: size}
	requested = strings.TrimSpace(requested)
	if requested == "" {
		d.Name = defaultFamily
		return d
	}
	tokens := strings.Fields(requested)
	for len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		if last == "Bold" {
			d.Bold = true
		} else if last == "Italic" {
			d.Italic = true
		} else {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	d.Name = strings.Join(tokens, " ")
	if d.Name == "" { // request consisted of style words only
		d.Name = defaultFamily
	}
	tracer().Debugf("font request '%s' parsed as %s", requested, d)
	return d
}

// ForHost returns a copy of d routed to the host platform.
func (d Descriptor) ForHost() Descriptor {
	d.Route = RouteHostFallback
	return d
}

// Style returns the style flags requested by d.
func (d Descriptor) Style() StyleFlags {
	var s StyleFlags
	if d.Bold {
		s |= StyleBold
	}
	if d.Italic {
		s |= StyleItalic
	}
	return s
}

func (d Descriptor) String() string {
	return fmt.Sprintf("font[%s %s %dpx %s]", d.Name, d.Style(), d.Size, d.Route)
}
