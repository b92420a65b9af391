package font

import (
	"encoding/binary"
	"errors"
)

// x/image/font/sfnt hides raw tables, but we need a few fields it does not
// expose: the named instances of 'fvar' and the style bits of 'head' and 'OS/2'.

var errShortTable = errors.New("font table truncated")

type tableRecord struct {
	offset, length uint32
}

type tableDirectory map[string]tableRecord

func readTableDirectory(blob []byte, faceIndex int) (tableDirectory, error) {
	if len(blob) < 12 {
		return nil, errShortTable
	}
	var offset uint32
	if string(blob[:4]) == "ttcf" {
		n := binary.BigEndian.Uint32(blob[8:])
		pos := 12 + 4*faceIndex
		if uint32(faceIndex) >= n || len(blob) < pos+4 {
			return nil, errShortTable
		}
		offset = binary.BigEndian.Uint32(blob[pos:])
	}
	if uint64(offset)+12 > uint64(len(blob)) {
		return nil, errShortTable
	}
	numTables := int(binary.BigEndian.Uint16(blob[offset+4:]))
	records := blob[offset+12:]
	if len(records) < numTables*16 {
		return nil, errShortTable
	}
	dir := make(tableDirectory, numTables)
	for i := 0; i < numTables; i++ {
		rec := records[i*16 : (i+1)*16]
		dir[string(rec[:4])] = tableRecord{
			offset: binary.BigEndian.Uint32(rec[8:]),
			length: binary.BigEndian.Uint32(rec[12:]),
		}
	}
	return dir, nil
}

// table returns the bytes of a table, or nil if the table is absent or
// lies outside the blob.
func (dir tableDirectory) table(blob []byte, tag string) []byte {
	rec, ok := dir[tag]
	if !ok {
		return nil
	}
	end := uint64(rec.offset) + uint64(rec.length)
	if end > uint64(len(blob)) {
		return nil
	}
	return blob[rec.offset:end]
}

// namedInstances returns the subfamily name IDs of the named instances
// declared in table 'fvar'.
func (dir tableDirectory) namedInstances(blob []byte) []uint16 {
	fvar := dir.table(blob, "fvar")
	if len(fvar) < 16 {
		return nil
	}
	u16 := func(at int) int { return int(binary.BigEndian.Uint16(fvar[at:])) }
	axesOffset, axisCount, axisSize := u16(4), u16(8), u16(10)
	instanceCount, instanceSize := u16(12), u16(14)
	if instanceSize < 4 {
		return nil
	}
	start := axesOffset + axisCount*axisSize
	ids := make([]uint16, 0, instanceCount)
	for i := 0; i < instanceCount; i++ {
		at := start + i*instanceSize
		if at+2 > len(fvar) {
			break
		}
		ids = append(ids, uint16(u16(at)))
	}
	return ids
}

// styleFlags collects bold and italic bits from 'head.macStyle' and 'OS/2.fsSelection'.
func (dir tableDirectory) styleFlags(blob []byte) StyleFlags {
	var s StyleFlags
	if head := dir.table(blob, "head"); len(head) >= 46 {
		mac := binary.BigEndian.Uint16(head[44:])
		if mac&0x01 != 0 {
			s |= StyleBold
		}
		if mac&0x02 != 0 {
			s |= StyleItalic
		}
	}
	if os2 := dir.table(blob, "OS/2"); len(os2) >= 64 {
		if binary.BigEndian.Uint16(os2[4:]) >= 700 { // usWeightClass
			s |= StyleBold
		}
		sel := binary.BigEndian.Uint16(os2[62:])
		if sel&0x20 != 0 {
			s |= StyleBold
		}
		if sel&0x201 != 0 { // italic or oblique
			s |= StyleItalic
		}
	}
	return s
}
