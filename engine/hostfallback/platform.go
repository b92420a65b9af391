package hostfallback

import (
	"errors"
	"fmt"

	"github.com/npillmayer/glyphres/core/font"
)

// ErrCapabilityAbsent is returned by platforms which do not offer a service
// at all, e.g. a platform without font linking.
var ErrCapabilityAbsent = errors.New("host platform lacks this capability")

// GlyphIndex is the index of a glyph within a host font.
type GlyphIndex uint16

// LogicalFont describes a font the way clients request it from the host.
type LogicalFont struct {
	Family string
	Size   uint32 // em height in pixels
	Bold   bool
	Italic bool
}

func (lf LogicalFont) String() string {
	style := font.StyleRegular
	if lf.Bold {
		style |= font.StyleBold
	}
	if lf.Italic {
		style |= font.StyleItalic
	}
	return fmt.Sprintf("%s %s %dpx", lf.Family, style, lf.Size)
}

// LogicalFontFor creates the logical font for a descriptor.
func LogicalFontFor(d font.Descriptor) LogicalFont {
	return LogicalFont{
		Family: d.Name,
		Size:   d.Size,
		Bold:   d.Bold,
		Italic: d.Italic,
	}
}

// NativeFont is a font realized by the host. Logical reports the font the
// host actually selected, which may differ from the one requested. Release
// has to be called exactly once.
type NativeFont interface {
	Logical() LogicalFont
	Release()
}

// FontProperties are the sentinel glyphs of a realized font.
type FontProperties struct {
	Invalid GlyphIndex // returned for code points the font cannot map
	Default GlyphIndex // the font's default glyph, usually .notdef
	Blank   GlyphIndex // the font's blank glyph
}

// CodepageMask is a bit set of Windows codepages (FS_* flags).
type CodepageMask uint32

// Codepage bits, as used by Windows font signatures.
const (
	CodepageLatin1      CodepageMask = 0x00000001 // 1252
	CodepageLatin2      CodepageMask = 0x00000002 // 1250
	CodepageCyrillic    CodepageMask = 0x00000004 // 1251
	CodepageGreek       CodepageMask = 0x00000008 // 1253
	CodepageTurkish     CodepageMask = 0x00000010 // 1254
	CodepageHebrew      CodepageMask = 0x00000020 // 1255
	CodepageArabic      CodepageMask = 0x00000040 // 1256
	CodepageBaltic      CodepageMask = 0x00000080 // 1257
	CodepageVietnamese  CodepageMask = 0x00000100 // 1258
	CodepageThai        CodepageMask = 0x00010000 // 874
	CodepageJapanese    CodepageMask = 0x00020000 // 932
	CodepageChineseSimp CodepageMask = 0x00040000 // 936
	CodepageKorean      CodepageMask = 0x00080000 // 949
	CodepageChineseTrad CodepageMask = 0x00100000 // 950
)

// Outline is a glyph rendered by the host into a coverage buffer.
type Outline struct {
	Data      []byte // coverage, rows of Stride bytes
	Stride    int    // row pitch; 0 means width aligned to 4 bytes
	Levels    int    // coverage value of a fully covered pixel
	BlackBoxX uint32 // width of the inked area
	BlackBoxY uint32 // height of the inked area
	OriginX   int    // left edge relative to the pen position
	OriginY   int    // top edge above the baseline
	CellIncX  int    // horizontal advance
}

// Platform is the set of host services the resolver depends on.
type Platform interface {
	// CreateFont realizes a logical font.
	CreateFont(LogicalFont) (NativeFont, error)
	// ShapeCharacter returns the glyphs a font produces for a single code point.
	ShapeCharacter(NativeFont, rune) ([]GlyphIndex, error)
	// FontProperties returns the sentinel glyphs of a font.
	FontProperties(NativeFont) (FontProperties, error)
	// MapCodepage returns the codepages able to represent a BMP code point.
	MapCodepage(rune) (CodepageMask, error)
	// LinkFont returns a font related to the given one which covers one of the codepages.
	LinkFont(CodepageMask, NativeFont) (NativeFont, error)
	// AnalyzeWithRecording lays out a code point with font fallback enabled,
	// appending the drawing operations to a recording.
	AnalyzeWithRecording(rune, NativeFont, *Recording) error
	// RasterizeGlyphOutline renders a glyph by index into a coverage buffer.
	RasterizeGlyphOutline(NativeFont, GlyphIndex) (Outline, error)
}
