package fontregistry

import (
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/font/embedded"
	"github.com/npillmayer/glyphres/core/glyph"
	"github.com/npillmayer/schuko/tracing"
)

// Blob is a font container loaded by a client, together with its faces.
// The registry owns Data; it is a copy of the client's bytes.
type Blob struct {
	Data   []byte
	Family string
	Faces  []*font.Face
}

// Registry is a type for holding information about fonts loaded by a client.
// Families are kept in the order in which they were first loaded, and the
// containers of a family in load order, too.
type Registry struct {
	sync.Mutex
	families      *linkedhashmap.Map // family name → *arraylist.List of *Blob
	defaultFamily string
}

// NewRegistry creates an empty registry. Descriptors requested without
// a family name will select defaultFamily.
func NewRegistry(defaultFamily string) *Registry {
	if defaultFamily == "" {
		defaultFamily = font.DefaultFamily
	}
	return &Registry{
		families:      linkedhashmap.New(),
		defaultFamily: defaultFamily,
	}
}

// Load registers a font container. It returns the family name the container
// has been filed under, or "" if the bytes did not contain a usable face.
// The caller may re-use blob as soon as Load returns.
func (fr *Registry) Load(blob []byte) string {
	b := &Blob{Data: make([]byte, len(blob))}
	copy(b.Data, blob)
	faceIndex, instance := 0, 0
	for {
		face, counts, err := font.OpenFace(b.Data, font.CombinedID(faceIndex, instance))
		if counts.NumFaces == 0 {
			tracer().Infof("font blob of %d bytes is not a font container: %v", len(blob), err)
			break
		}
		if err != nil {
			tracer().Errorf("skipping face #%d: %v", faceIndex, err)
		} else {
			b.Faces = append(b.Faces, face)
			if b.Family == "" {
				b.Family = face.Family
			}
			if instance < counts.NumInstances {
				instance++
				continue
			}
		}
		faceIndex, instance = faceIndex+1, 0
		if faceIndex >= counts.NumFaces {
			break
		}
	}
	if len(b.Faces) == 0 || b.Family == "" {
		tracer().Errorf("font blob of %d bytes does not contain a named face", len(blob))
		return ""
	}
	fr.Lock()
	defer fr.Unlock()
	var blobs *arraylist.List
	if l, ok := fr.families.Get(b.Family); ok {
		blobs = l.(*arraylist.List)
	} else {
		blobs = arraylist.New()
		fr.families.Put(b.Family, blobs)
	}
	blobs.Add(b)
	tracer().Infof("registry stores %d face(s) of family %s", len(b.Faces), b.Family)
	return b.Family
}

// Create creates a font descriptor from a font request like "Arial Bold".
func (fr *Registry) Create(name string, size uint32) font.Descriptor {
	return font.ParseDescriptor(name, size, fr.defaultFamily)
}

// Destroy releases a descriptor. Descriptors do not hold registry resources,
// so this does not change the registry.
func (fr *Registry) Destroy(d *font.Descriptor) {
	if d != nil {
		tracer().Debugf("releasing %s", d)
	}
}

// FindBestFace searches the faces of d's family for one that renders cp.
// Faces not matching a requested bold or italic style are skipped in a first
// pass; if bold or italic has been requested and no matching face covers cp,
// a second pass accepts any face of the family. The first face delivering a
// bitmap wins.
//
// FindBestFace returns nil if the family is unknown or no face covers cp.
func (fr *Registry) FindBestFace(d font.Descriptor, cp rune) (*font.Face, *glyph.Bitmap) {
	fr.Lock()
	defer fr.Unlock()
	l, ok := fr.families.Get(d.Name)
	if !ok {
		tracer().Debugf("registry does not contain family %s", d.Name)
		return nil, nil
	}
	blobs := l.(*arraylist.List)
	if face, bm := searchFaces(blobs, d, cp, true); bm != nil {
		return face, bm
	}
	if d.Bold || d.Italic {
		tracer().Debugf("no %s face of %s covers %#U, relaxing style", d.Style(), d.Name, cp)
		return searchFaces(blobs, d, cp, false)
	}
	return nil, nil
}

func searchFaces(blobs *arraylist.List, d font.Descriptor, cp rune, strict bool) (*font.Face, *glyph.Bitmap) {
	it := blobs.Iterator()
	for it.Next() {
		for _, face := range it.Value().(*Blob).Faces {
			if strict && (d.Bold && !face.Style.IsBold() || d.Italic && !face.Style.IsItalic()) {
				continue
			}
			if bm := embedded.Rasterize(face, cp, d.Size); bm != nil {
				return face, bm
			}
		}
	}
	return nil, nil
}

// Families returns the names of all registered families, in load order.
func (fr *Registry) Families() []string {
	fr.Lock()
	defer fr.Unlock()
	names := make([]string, 0, fr.families.Size())
	for _, k := range fr.families.Keys() {
		names = append(names, k.(string))
	}
	return names
}

// Faces returns all faces registered for a family, in load order.
func (fr *Registry) Faces(family string) []*font.Face {
	fr.Lock()
	defer fr.Unlock()
	l, ok := fr.families.Get(family)
	if !ok {
		return nil
	}
	var faces []*font.Face
	l.(*arraylist.List).Each(func(_ int, v interface{}) {
		faces = append(faces, v.(*Blob).Faces...)
	})
	return faces
}

// LogFontList is a helper function to dump the list of known families and faces
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	tracer().Infof("--- registered fonts ---")
	for _, family := range fr.Families() {
		for _, face := range fr.Faces(family) {
			tracer().Infof("family [%s] = %s", family, face)
		}
	}
	tracer().Infof("------------------------")
}
