/*
Package systemfonts enumerates the fonts installed on the host.

Fonts are found either through fontconfig (if the application configuration
points to an 'fc-list' binary, key 'fontconfig') or by scanning the platform's
font directories. Additional directories may be configured with key
'glyphres.font-dirs', separated by the OS list separator. The fonts of the
Go font family are always present as built-ins, ranking after all host fonts.

Enumeration happens once, on first use. Clients call Refresh to pick up
fonts installed later.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package systemfonts

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'glyphres.sysfonts'.
func tracer() tracing.Trace {
	return tracing.Select("glyphres.sysfonts")
}
