/*
Package fonttest builds font containers for tests: TrueType collections
made of several fonts, and fonts with additional tables.

The fonts of the Go font family serve as raw material.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fonttest

import (
	"encoding/binary"
	"sort"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Family "Go" in four styles, plus "Go Mono".
var (
	Regular    = goregular.TTF
	Bold       = gobold.TTF
	Italic     = goitalic.TTF
	BoldItalic = gobolditalic.TTF
	Mono       = gomono.TTF
)

type table struct {
	tag  string
	data []byte
}

func tables(font []byte) []table {
	numTables := int(binary.BigEndian.Uint16(font[4:]))
	tt := make([]table, 0, numTables+1)
	for i := 0; i < numTables; i++ {
		rec := font[12+i*16:]
		off := binary.BigEndian.Uint32(rec[8:])
		length := binary.BigEndian.Uint32(rec[12:])
		tt = append(tt, table{tag: string(rec[:4]), data: font[off : off+length]})
	}
	return tt
}

func align4(n int) int {
	return (n + 3) &^ 3
}

// writeFont serializes a font with its table directory at position base of
// the final container. Table offsets are absolute, as required in collections.
func writeFont(version []byte, tt []table, base int) []byte {
	sort.Slice(tt, func(i, j int) bool { return tt[i].tag < tt[j].tag })
	head := 12 + 16*len(tt)
	size := head
	for _, t := range tt {
		size += align4(len(t.data))
	}
	out := make([]byte, size)
	copy(out, version)
	binary.BigEndian.PutUint16(out[4:], uint16(len(tt)))
	pos := head
	for i, t := range tt {
		rec := out[12+i*16:]
		copy(rec, t.tag)
		binary.BigEndian.PutUint32(rec[8:], uint32(base+pos))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(t.data)))
		copy(out[pos:], t.data)
		pos += align4(len(t.data))
	}
	return out
}

// Collection packs fonts into a TrueType collection (*.ttc).
func Collection(fonts ...[]byte) []byte {
	header := align4(12 + 4*len(fonts))
	out := make([]byte, header)
	copy(out, "ttcf")
	binary.BigEndian.PutUint32(out[4:], 0x00010000)
	binary.BigEndian.PutUint32(out[8:], uint32(len(fonts)))
	for i, f := range fonts {
		binary.BigEndian.PutUint32(out[12+4*i:], uint32(len(out)))
		out = append(out, writeFont(f[:4], tables(f), len(out))...)
	}
	return out
}

// WithNamedInstances returns a copy of font with an 'fvar' table declaring
// one weight axis and a named instance for each of the given subfamily name IDs.
func WithNamedInstances(font []byte, subfamilyNameIDs ...uint16) []byte {
	const axisSize, instanceSize = 20, 8
	fvar := make([]byte, 16+axisSize+instanceSize*len(subfamilyNameIDs))
	put16 := func(at int, v uint16) { binary.BigEndian.PutUint16(fvar[at:], v) }
	put32 := func(at int, v uint32) { binary.BigEndian.PutUint32(fvar[at:], v) }
	put16(0, 1)  // major version
	put16(4, 16) // axes array offset
	put16(6, 2)
	put16(8, 1) // axis count
	put16(10, axisSize)
	put16(12, uint16(len(subfamilyNameIDs)))
	put16(14, instanceSize)
	copy(fvar[16:], "wght")
	put32(20, 100<<16)
	put32(24, 400<<16)
	put32(28, 900<<16)
	for i, id := range subfamilyNameIDs {
		at := 16 + axisSize + i*instanceSize
		put16(at, id)
		put32(at+4, uint32(400+100*i)<<16)
	}
	tt := append(tables(font), table{tag: "fvar", data: fvar})
	return writeFont(font[:4], tt, 0)
}
