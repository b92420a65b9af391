package systemfonts

import (
	"strings"

	"github.com/npillmayer/glyphres/core/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

const builtinPrefix = "builtin:"

// The Go fonts are always present. They cover Latin, Greek and Cyrillic.
var builtins = []struct {
	name, family, subfamily string
	style                   font.StyleFlags
	data                    []byte
}{
	{"go-regular", "Go", "Regular", font.StyleRegular, goregular.TTF},
	{"go-bold", "Go", "Bold", font.StyleBold, gobold.TTF},
	{"go-italic", "Go", "Italic", font.StyleItalic, goitalic.TTF},
	{"go-bolditalic", "Go", "Bold Italic", font.StyleBold | font.StyleItalic, gobolditalic.TTF},
	{"go-mono", "Go Mono", "Regular", font.StyleRegular, gomono.TTF},
	{"go-mono-bold", "Go Mono", "Bold", font.StyleBold, gomonobold.TTF},
}

// BuiltinFamily is the family of the built-in sans serif faces.
const BuiltinFamily = "Go"

func builtinFaces() []FaceInfo {
	faces := make([]FaceInfo, len(builtins))
	for i, b := range builtins {
		faces[i] = FaceInfo{
			Path:      builtinPrefix + b.name,
			Family:    b.family,
			Subfamily: b.subfamily,
			Style:     b.style,
		}
	}
	return faces
}

func builtinData(p string) ([]byte, bool) {
	if !strings.HasPrefix(p, builtinPrefix) {
		return nil, false
	}
	name := strings.TrimPrefix(p, builtinPrefix)
	for _, b := range builtins {
		if b.name == name {
			return b.data, true
		}
	}
	return nil, false
}

// IsBuiltin is a predicate: is a face one of the always-present Go fonts?
func IsBuiltin(fi FaceInfo) bool {
	return strings.HasPrefix(fi.Path, builtinPrefix)
}
