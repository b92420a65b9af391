/*
Package fontregistry manages a registry for fonts loaded by clients.

Clients hand in font containers as raw bytes. The registry keeps a private
copy of every container, opens all of its faces (including the named
instances of variable fonts) and files the container under its family name.
Glyph lookups search the faces of a family in load order, first for a
face matching the requested style exactly, then, if no such face covers a
code point, for any face of the family.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphres.registry'
func tracer() tracing.Trace {
	return tracing.Select("glyphres.registry")
}
