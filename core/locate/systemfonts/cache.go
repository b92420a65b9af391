package systemfonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphres/core"
	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/font/fontregistry"
	"github.com/npillmayer/schuko"
)

// FaceInfo describes a single face of a host font.
type FaceInfo struct {
	Path      string // font file, or a "builtin:" pseudo path
	Index     int    // face index within a collection, -1 if yet unknown
	Family    string
	Subfamily string
	Style     font.StyleFlags
}

// FontInfo describes a host font family with all of its faces.
type FontInfo struct {
	Family string
	Faces  []FaceInfo
}

// Styles returns the style flags of all faces of a family, in face order.
func (fi FontInfo) Styles() []font.StyleFlags {
	styles := make([]font.StyleFlags, len(fi.Faces))
	for i, f := range fi.Faces {
		styles[i] = f.Style
	}
	return styles
}

// Cache holds the host's fonts, grouped by family. Faces are parsed lazily
// when first opened and kept for the lifetime of the cache (or until Refresh).
//
// Faces returned by Open are shared between callers; see font.Face for
// concurrency restrictions.
type Cache struct {
	sync.Mutex
	conf       schuko.Configuration
	enumerated bool
	families   []*FontInfo
	index      *trie.Trie // normalized family name → *FontInfo
	faces      map[string]*font.Face
	data       map[string][]byte // font file path → contents
}

// NewCache creates a cache for host fonts. Enumeration is deferred until the
// first query. conf may be nil, in which case fontconfig is not consulted.
func NewCache(conf schuko.Configuration) *Cache {
	return &Cache{
		conf:  conf,
		index: trie.New(),
		faces: make(map[string]*font.Face),
		data:  make(map[string][]byte),
	}
}

// Refresh discards everything known about host fonts and enumerates them again.
func (c *Cache) Refresh() {
	c.Lock()
	defer c.Unlock()
	c.enumerate(true)
}

// Fonts returns all font families known, host fonts first, built-ins last.
func (c *Cache) Fonts() []FontInfo {
	c.Lock()
	defer c.Unlock()
	c.ensure()
	fonts := make([]FontInfo, len(c.families))
	for i, fi := range c.families {
		fonts[i] = *fi
	}
	return fonts
}

// Lookup finds a family by name. Matching ignores case and the difference
// between blanks, dashes and underscores.
func (c *Cache) Lookup(family string) (FontInfo, bool) {
	c.Lock()
	defer c.Unlock()
	c.ensure()
	if node, ok := c.index.Find(fontregistry.NormalizeFontname(family)); ok {
		return *node.Meta().(*FontInfo), true
	}
	return FontInfo{}, false
}

// Search returns all families whose normalized names start with prefix.
func (c *Cache) Search(prefix string) []FontInfo {
	c.Lock()
	defer c.Unlock()
	c.ensure()
	var fonts []FontInfo
	for _, key := range c.index.PrefixSearch(fontregistry.NormalizeFontname(prefix)) {
		if node, ok := c.index.Find(key); ok {
			fonts = append(fonts, *node.Meta().(*FontInfo))
		}
	}
	return fonts
}

// Open returns the parsed face for a host font face.
func (c *Cache) Open(fi FaceInfo) (*font.Face, error) {
	c.Lock()
	defer c.Unlock()
	key := fmt.Sprintf("%s#%d#%s#%s", fi.Path, fi.Index, fi.Family, fi.Subfamily)
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	data, err := c.read(fi.Path)
	if err != nil {
		return nil, err
	}
	var face *font.Face
	if fi.Index >= 0 {
		face, _, err = font.OpenFace(data, font.CombinedID(fi.Index, 0))
	} else {
		face, err = findInCollection(data, fi)
	}
	if err != nil {
		return nil, err
	}
	c.faces[key] = face
	return face, nil
}

// Data returns the contents of the font file holding a host face.
// Clients must not modify the returned bytes.
func (c *Cache) Data(fi FaceInfo) ([]byte, error) {
	c.Lock()
	defer c.Unlock()
	return c.read(fi.Path)
}

func (c *Cache) read(p string) ([]byte, error) {
	if data, ok := c.data[p]; ok {
		return data, nil
	}
	data, err := readFontFile(p)
	if err != nil {
		return nil, err
	}
	c.data[p] = data
	return data, nil
}

// Covers is a predicate: does a host face map code point r?
// Faces which cannot be opened cover nothing.
func (c *Cache) Covers(fi FaceInfo, r rune) bool {
	face, err := c.Open(fi)
	if err != nil {
		tracer().Debugf("cannot open %s: %v", fi.Path, err)
		return false
	}
	c.Lock()
	defer c.Unlock()
	return face.Covers(r)
}

// FindFile locates a font file by file name in the host's font directories.
func FindFile(name string) (string, error) {
	fpath, err := findfont.Find(name)
	if err != nil || fpath == "" {
		return "", core.WrapError(err, core.EMISSING, "font file not found: %s", name)
	}
	return fpath, nil
}

// --- Enumeration -----------------------------------------------------------

func (c *Cache) ensure() {
	if !c.enumerated {
		c.enumerate(false)
	}
}

func (c *Cache) enumerate(refresh bool) {
	c.families = nil
	c.index = trie.New()
	c.faces = make(map[string]*font.Face)
	c.data = make(map[string][]byte)
	faces, ok := loadFontConfigList(c.conf, refresh)
	if ok {
		tracer().Infof("fontconfig lists %d host faces", len(faces))
	} else {
		faces = scanFontFiles(c.fontFiles())
	}
	for _, fi := range faces {
		c.add(fi)
	}
	for _, fi := range builtinFaces() {
		c.add(fi)
	}
	c.enumerated = true
	tracer().Infof("%d font families available", len(c.families))
}

func (c *Cache) add(fi FaceInfo) {
	key := fontregistry.NormalizeFontname(fi.Family)
	if key == "" {
		return
	}
	if node, ok := c.index.Find(key); ok {
		info := node.Meta().(*FontInfo)
		info.Faces = append(info.Faces, fi)
		return
	}
	info := &FontInfo{Family: fi.Family, Faces: []FaceInfo{fi}}
	c.families = append(c.families, info)
	c.index.Add(key, info)
}

func (c *Cache) fontFiles() []string {
	files := findfont.List()
	if c.conf == nil {
		return files
	}
	for _, dir := range filepath.SplitList(c.conf.GetString("glyphres.font-dirs")) {
		if dir = strings.TrimSpace(dir); dir == "" {
			continue
		}
		filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() && isFontFile(p) {
				files = append(files, p)
			}
			return nil
		})
	}
	return files
}

func scanFontFiles(paths []string) []FaceInfo {
	var faces []FaceInfo
	for _, p := range paths {
		if !isFontFile(p) {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			tracer().Debugf("cannot read font file %s: %v", p, err)
			continue
		}
		for i := 0; ; i++ {
			face, counts, err := font.OpenFace(data, font.CombinedID(i, 0))
			if err == nil && face.Family != "" {
				faces = append(faces, FaceInfo{
					Path:      p,
					Index:     i,
					Family:    face.Family,
					Subfamily: face.Subfamily,
					Style:     face.Style,
				})
			}
			if i+1 >= counts.NumFaces {
				break
			}
		}
	}
	tracer().Infof("scanned %d font files, found %d faces", len(paths), len(faces))
	return faces
}

func readFontFile(p string) ([]byte, error) {
	if data, ok := builtinData(p); ok {
		return data, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", p)
	}
	return data, nil
}

// findInCollection opens the face of a collection matching fi's family and,
// if possible, its subfamily.
func findInCollection(data []byte, fi FaceInfo) (*font.Face, error) {
	var candidate *font.Face
	for i := 0; ; i++ {
		face, counts, err := font.OpenFace(data, font.CombinedID(i, 0))
		if err == nil && strings.EqualFold(face.Family, fi.Family) {
			if fi.Subfamily == "" || strings.EqualFold(face.Subfamily, fi.Subfamily) {
				return face, nil
			}
			if candidate == nil {
				candidate = face
			}
		}
		if i+1 >= counts.NumFaces {
			break
		}
	}
	if candidate == nil {
		return nil, core.Error(core.EMISSING, "no face of family %s in %s", fi.Family, fi.Path)
	}
	return candidate, nil
}
