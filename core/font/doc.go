/*
Package font is for font descriptors, font handles and font faces.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "family" is a set of fonts sharing a design. An example is "Arial".
Fonts of a family may be delivered as separate files or as a single
TrueType collection (*.ttc).

* A "face" is a single font of a family, addressed within its container
by a face index and, for variable fonts, a named-instance index.
An example is "Arial Bold".

* A "descriptor" is what clients ask for: a family name, a pixel size and
style flags. Descriptors are resolved to faces lazily, one code point at
a time.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphres.font'.
func tracer() tracing.Trace {
	return tracing.Select("glyphres.font")
}
