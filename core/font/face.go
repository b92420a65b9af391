package font

import (
	"fmt"

	"github.com/npillmayer/glyphres/core"
	"golang.org/x/image/font/sfnt"
)

// Face is a single face within a font container, possibly a named instance
// of a variable font.
//
// The combined ID addresses the face within its container:
//
//     CombinedID == InstanceIndex<<16 + FaceIndex
//
// Instance 0 is the default instance, instances 1…n are the named instances
// declared by the font's 'fvar' table. As x/image/font/sfnt does not apply
// variations, named instances are rendered with the default outlines; they
// differ in name and style flags only.
//
// A Face is not safe for concurrent use. Owners have to serialize access.
type Face struct {
	FaceIndex     int
	InstanceIndex int
	CombinedID    int
	Style         StyleFlags
	Family        string
	Subfamily     string
	SFNT          *sfnt.Font
	buf           sfnt.Buffer
}

// Counts are the numbers of faces and named instances a container declares.
// NumInstances refers to the face opened last.
type Counts struct {
	NumFaces     int
	NumInstances int
}

// CombinedID creates a face address from a face index and an instance index.
func CombinedID(faceIndex, instanceIndex int) int {
	return instanceIndex<<16 + faceIndex
}

// SplitID splits a combined face address into face index and instance index.
func SplitID(combinedID int) (faceIndex, instanceIndex int) {
	return combinedID & 0xffff, combinedID >> 16
}

// OpenFace opens the face addressed by combinedID in a font container
// (a single font file or a collection). It returns the counts declared by the
// container as far as they could be determined, even if opening the face fails.
// If Counts.NumFaces is 0, the blob is not a font container at all.
func OpenFace(blob []byte, combinedID int) (*Face, Counts, error) {
	var counts Counts
	faceIndex, instance := SplitID(combinedID)
	if len(blob) < 12 {
		return nil, counts, core.Error(core.EINVALID, "font container too short (%d bytes)", len(blob))
	}
	coll, err := sfnt.ParseCollection(blob)
	if err != nil {
		return nil, counts, core.WrapError(err, core.EINVALID, "cannot parse font container")
	}
	counts.NumFaces = coll.NumFonts()
	if faceIndex >= counts.NumFaces {
		return nil, counts, core.Error(core.EMISSING, "no face #%d in container of %d faces",
			faceIndex, counts.NumFaces)
	}
	f, err := coll.Font(faceIndex)
	if err != nil {
		return nil, counts, core.WrapError(err, core.EINVALID, "cannot open face #%d", faceIndex)
	}
	dir, err := readTableDirectory(blob, faceIndex)
	if err != nil {
		return nil, counts, core.WrapError(err, core.EINVALID, "cannot read tables of face #%d", faceIndex)
	}
	instances := dir.namedInstances(blob)
	counts.NumInstances = len(instances)
	if instance > counts.NumInstances {
		return nil, counts, core.Error(core.EMISSING, "face #%d has no named instance #%d",
			faceIndex, instance)
	}
	face := &Face{
		FaceIndex:     faceIndex,
		InstanceIndex: instance,
		CombinedID:    combinedID,
		SFNT:          f,
	}
	face.Family = face.name(sfnt.NameIDFamily)
	if face.Family == "" {
		face.Family = face.name(sfnt.NameIDTypographicFamily)
	}
	if instance == 0 {
		face.Subfamily = face.name(sfnt.NameIDSubfamily)
		face.Style = dir.styleFlags(blob)
	} else {
		face.Subfamily = face.name(sfnt.NameID(instances[instance-1]))
		face.Style = GuessStyle(face.Subfamily)
	}
	tracer().Debugf("opened face %s", face)
	return face, counts, nil
}

func (f *Face) name(id sfnt.NameID) string {
	n, err := f.SFNT.Name(&f.buf, id)
	if err != nil {
		return ""
	}
	return n
}

// Buffer returns the face's scratch buffer for sfnt calls.
func (f *Face) Buffer() *sfnt.Buffer {
	return &f.buf
}

// GlyphIndex returns the glyph for code point r, or 0 if the face does not map r.
func (f *Face) GlyphIndex(r rune) sfnt.GlyphIndex {
	gid, err := f.SFNT.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return gid
}

// Covers is a predicate: does the face map code point r to a glyph?
func (f *Face) Covers(r rune) bool {
	return f.GlyphIndex(r) != 0
}

func (f *Face) String() string {
	if f == nil {
		return "<no face>"
	}
	return fmt.Sprintf("%s %s (%s) #%#x", f.Family, f.Subfamily, f.Style, f.CombinedID)
}
