package portable

import (
	"unicode"

	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/glyphres/core/font/fontregistry"
	"github.com/npillmayer/glyphres/engine/glyphing/harfbuzz"
	"github.com/npillmayer/glyphres/engine/hostfallback"
)

// scriptFallback lists the preferred fallback families for a script.
type scriptFallback struct {
	name     string
	families []string
}

var (
	cjkJapanese = []string{"Noto Sans CJK JP", "Yu Gothic", "MS Gothic", "Hiragino Sans", "IPAGothic"}
	cjkSimp     = []string{"Noto Sans CJK SC", "Microsoft YaHei", "SimSun", "PingFang SC", "WenQuanYi Micro Hei"}
	cjkKorean   = []string{"Noto Sans CJK KR", "Malgun Gothic", "Apple SD Gothic Neo", "NanumGothic"}
	general     = []string{"DejaVu Sans", "Noto Sans", "Segoe UI", "Arial", "Liberation Sans"}
	emojiFonts  = []string{"Noto Color Emoji", "Segoe UI Emoji", "Apple Color Emoji", "Noto Emoji", "Twemoji", "Symbola"}
	symbolFonts = []string{"Segoe UI Symbol", "Noto Sans Symbols", "Noto Sans Symbols2", "DejaVu Sans", "Symbola"}
)

var scriptFallbacks = map[hblang.Script]scriptFallback{
	hblang.Han:        {"Han", cjkSimp},
	hblang.Hiragana:   {"Hiragana", cjkJapanese},
	hblang.Katakana:   {"Katakana", cjkJapanese},
	hblang.Hangul:     {"Hangul", cjkKorean},
	hblang.Arabic:     {"Arabic", []string{"Noto Sans Arabic", "Noto Naskh Arabic", "Segoe UI", "Tahoma", "DejaVu Sans"}},
	hblang.Hebrew:     {"Hebrew", []string{"Noto Sans Hebrew", "Segoe UI", "David", "DejaVu Sans"}},
	hblang.Thai:       {"Thai", []string{"Noto Sans Thai", "Leelawadee UI", "Tahoma", "Loma"}},
	hblang.Devanagari: {"Devanagari", []string{"Noto Sans Devanagari", "Nirmala UI", "Mangal", "Lohit Devanagari"}},
	hblang.Bengali:    {"Bengali", []string{"Noto Sans Bengali", "Nirmala UI", "Vrinda", "Lohit Bengali"}},
	hblang.Tamil:      {"Tamil", []string{"Noto Sans Tamil", "Nirmala UI", "Latha", "Lohit Tamil"}},
	hblang.Armenian:   {"Armenian", []string{"Noto Sans Armenian", "DejaVu Sans", "Sylfaen"}},
	hblang.Georgian:   {"Georgian", []string{"Noto Sans Georgian", "DejaVu Sans", "Sylfaen"}},
	hblang.Ethiopic:   {"Ethiopic", []string{"Noto Sans Ethiopic", "Nyala", "Abyssinica SIL"}},
	hblang.Greek:      {"Greek", general},
	hblang.Cyrillic:   {"Cyrillic", general},
	hblang.Latin:      {"Latin", general},
}

// fallbackFamilies returns the preferred fallback families for a code point.
// Symbols without a script of their own get the symbol fonts.
func (p *Platform) fallbackFamilies(r rune) (string, []string) {
	if hostfallback.IsEmoji(r) {
		return "Emoji", emojiFonts
	}
	script, distinct := harfbuzz.ScriptOf(r)
	if sf, ok := p.fallbacks[script]; ok {
		return sf.name, sf.families
	}
	if !distinct && unicode.IsSymbol(r) {
		return "Symbol", symbolFonts
	}
	return "Common", general
}

// AnalyzeWithRecording lays out a single code point with font fallback,
// like a script analyzer would. If the probe font covers the code point it is
// used as is. Otherwise the preferred families for the code point's script
// are tried, then every host family. The font used is appended to the
// recording as a font selection, followed by the glyphs output.
func (p *Platform) AnalyzeWithRecording(r rune, nf hostfallback.NativeFont, rec *hostfallback.Recording) error {
	probe, err := p.native(nf)
	if err != nil {
		return err
	}
	used := probe
	if !p.covers(probe, r) {
		script, families := p.fallbackFamilies(r)
		tracer().Debugf("%#U classified as %s", r, script)
		if f := p.coveringFont(r, probe, families); f != nil {
			defer f.Release()
			used = f
		}
	}
	rec.Append(hostfallback.Record{
		Type: hostfallback.RecordSelectFont,
		Font: used.logical,
	})
	glyphs, err := p.ShapeCharacter(used, r)
	if err != nil {
		return err
	}
	rec.Append(hostfallback.Record{
		Type:   hostfallback.RecordGlyphs,
		Glyphs: glyphs,
	})
	return nil
}

func (p *Platform) covers(f *nativeFont, r rune) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return f.face.Covers(r)
}

// coveringFont realizes the first font covering r, trying the preferred
// families first, then all host families in enumeration order.
func (p *Platform) coveringFont(r rune, probe *nativeFont, preferred []string) *nativeFont {
	want := styleOf(probe.logical)
	tried := map[string]bool{
		fontregistry.NormalizeFontname(probe.logical.Family): true,
	}
	try := func(family string) *nativeFont {
		key := fontregistry.NormalizeFontname(family)
		if tried[key] {
			return nil
		}
		tried[key] = true
		f := p.realize(family, want, probe.logical.Size)
		if f == nil {
			return nil
		}
		if p.covers(f, r) {
			return f
		}
		f.Release()
		return nil
	}
	for _, family := range preferred {
		if f := try(family); f != nil {
			return f
		}
	}
	for _, info := range p.fonts.Fonts() {
		if f := try(info.Family); f != nil {
			return f
		}
	}
	tracer().Debugf("no host font covers %#U", r)
	return nil
}
