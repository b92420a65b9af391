package hostfallback

import (
	"errors"
	"testing"

	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/glyph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake host platform ----------------------------------------------------

type fakeFont struct {
	lf LogicalFont
	p  *fakePlatform
}

func (f *fakeFont) Logical() LogicalFont { return f.lf }
func (f *fakeFont) Release()             { f.p.released++ }

type fakePlatform struct {
	glyphs    map[string]map[rune][]GlyphIndex // family → code point → glyphs
	anonymous map[string]bool                  // families realized without a name
	missing   map[string]bool                  // families which cannot be realized
	props     FontProperties
	masks     map[rune]CodepageMask
	links     map[CodepageMask]string
	fallback  map[rune][]string // font selections recorded by the analyzer
	outlines  map[GlyphIndex]Outline
	noLinking bool
	probed    string // font handed to the analyzer
	created   int
	released  int
	calls     []string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		glyphs: map[string]map[rune][]GlyphIndex{
			"Arial":           {'A': {36}, ' ': {3}, 'x': {3}, 'é': {108}},
			"MS Gothic":       {'あ': {1200}},
			"SimSun-ExtB":     {0x20000: {4000}},
			"Segoe UI Emoji":  {0x1f600: {900, 901}},
			"Segoe UI Symbol": {0x2603: {700}},
		},
		anonymous: map[string]bool{},
		missing:   map[string]bool{},
		props:     FontProperties{Invalid: 0xffff, Default: 0, Blank: 3},
		masks:     map[rune]CodepageMask{'あ': CodepageJapanese},
		links:     map[CodepageMask]string{CodepageJapanese: "MS Gothic"},
		fallback: map[rune][]string{
			0x20000: {"SimSun-ExtB"},
			0x1f600: {"Segoe UI", "Segoe UI Emoji"},
			0x2603:  {"Segoe UI", "Segoe UI Symbol"},
			'あ':     {"Yu Gothic"},
		},
		outlines: map[GlyphIndex]Outline{},
	}
}

func (p *fakePlatform) CreateFont(lf LogicalFont) (NativeFont, error) {
	p.calls = append(p.calls, "create:"+lf.Family)
	if p.missing[lf.Family] {
		return nil, errors.New("cannot create font")
	}
	p.created++
	if p.anonymous[lf.Family] {
		lf.Family = ""
	}
	return &fakeFont{lf: lf, p: p}, nil
}

func (p *fakePlatform) ShapeCharacter(nf NativeFont, r rune) ([]GlyphIndex, error) {
	p.calls = append(p.calls, "shape")
	family := nf.(*fakeFont).lf.Family
	for fam, m := range p.glyphs {
		if fam == family || (family == "" && m[r] != nil) {
			if g, ok := m[r]; ok {
				return g, nil
			}
		}
	}
	return []GlyphIndex{p.props.Default}, nil
}

func (p *fakePlatform) FontProperties(NativeFont) (FontProperties, error) {
	return p.props, nil
}

func (p *fakePlatform) MapCodepage(r rune) (CodepageMask, error) {
	p.calls = append(p.calls, "codepages")
	if m, ok := p.masks[r]; ok {
		return m, nil
	}
	return 0, nil
}

func (p *fakePlatform) LinkFont(mask CodepageMask, nf NativeFont) (NativeFont, error) {
	p.calls = append(p.calls, "link")
	if p.noLinking {
		return nil, ErrCapabilityAbsent
	}
	family, ok := p.links[mask]
	if !ok {
		return nil, errors.New("no linked font")
	}
	lf := nf.Logical()
	lf.Family = family
	return p.CreateFont(lf)
}

func (p *fakePlatform) AnalyzeWithRecording(r rune, nf NativeFont, rec *Recording) error {
	p.calls = append(p.calls, "analyze")
	p.probed = nf.Logical().Family
	for _, family := range p.fallback[r] {
		lf := nf.Logical()
		lf.Family = family
		rec.Append(Record{Type: RecordSelectFont, Font: lf})
	}
	rec.Append(Record{Type: RecordGlyphs, Glyphs: []GlyphIndex{1}})
	return nil
}

func (p *fakePlatform) RasterizeGlyphOutline(nf NativeFont, gid GlyphIndex) (Outline, error) {
	if ol, ok := p.outlines[gid]; ok {
		return ol, nil
	}
	if gid == 0xdead {
		return Outline{}, errors.New("GDI_ERROR")
	}
	return Outline{
		Data:      []byte{64, 32, 0, 0},
		Levels:    64,
		BlackBoxX: 2,
		BlackBoxY: 1,
		OriginX:   1,
		OriginY:   7,
		CellIncX:  9,
	}, nil
}

func (p *fakePlatform) called(what string) bool {
	for _, c := range p.calls {
		if c == what {
			return true
		}
	}
	return false
}

func descriptor(name string) font.Descriptor {
	return font.ParseDescriptor(name, 16, "").ForHost()
}

var allStages = Options{Remap: true, Fallback: true}

// --- Tests -----------------------------------------------------------------

func TestDirectStage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.host")
	defer teardown()
	//
	p := newFakePlatform()
	res, ok := NewResolver(p).Resolve(descriptor("Arial"), 'A', allStages)
	require.True(t, ok)
	assert.Equal(t, "Arial", res.Family)
	assert.Equal(t, []GlyphIndex{36}, res.Glyphs)
	assert.False(t, p.called("codepages"), "remap must not run after direct success")
	assert.False(t, p.called("analyze"), "fallback must not run after direct success")
	assert.Equal(t, p.created, p.released)
}

func TestDirectStageAnonymousFont(t *testing.T) {
	p := newFakePlatform()
	p.anonymous["Arial"] = true
	res, ok := NewResolver(p).Resolve(descriptor("Arial"), 'A', allStages)
	require.True(t, ok)
	assert.Equal(t, "Arial", res.Family, "requested family expected for unnamed fonts")
}

func TestSentinelRejection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.host")
	defer teardown()
	//
	p := newFakePlatform()
	r := NewResolver(p)
	_, ok := r.Resolve(descriptor("Arial"), 'x', Options{}) // maps to the blank glyph
	assert.False(t, ok)
	res, ok := r.Resolve(descriptor("Arial"), ' ', Options{})
	require.True(t, ok, "space is exempt from the blank check")
	assert.Equal(t, []GlyphIndex{3}, res.Glyphs)
	_, ok = r.Resolve(descriptor("Arial"), 'ß', Options{}) // maps to the default glyph
	assert.False(t, ok)
	p.glyphs["Arial"]['ß'] = []GlyphIndex{77, 0xffff}
	_, ok = r.Resolve(descriptor("Arial"), 'ß', Options{})
	assert.False(t, ok, "any invalid glyph rejects the whole list")
	assert.Equal(t, p.created, p.released)
}

func TestRemapStage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.host")
	defer teardown()
	//
	p := newFakePlatform()
	res, ok := NewResolver(p).Resolve(descriptor("Arial"), 'あ', allStages)
	require.True(t, ok)
	assert.Equal(t, "MS Gothic", res.Family)
	assert.Equal(t, []GlyphIndex{1200}, res.Glyphs)
	assert.False(t, p.called("analyze"))
	assert.Equal(t, 2, p.created)
	assert.Equal(t, p.created, p.released)
}

func TestRemapSkippedOutsideBMP(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.host")
	defer teardown()
	//
	p := newFakePlatform()
	res, ok := NewResolver(p).Resolve(descriptor("Arial"), 0x20000, allStages)
	require.True(t, ok)
	assert.Equal(t, "SimSun-ExtB", res.Family)
	assert.False(t, p.called("codepages"), "code points beyond U+FFFF skip font linking")
	assert.Equal(t, "Arial", p.probed)
	assert.Equal(t, p.created, p.released)
}

func TestFallbackAfterFailedLinking(t *testing.T) {
	p := newFakePlatform()
	p.noLinking = true
	res, ok := NewResolver(p).Resolve(descriptor("Arial"), 0x2603, allStages) // snowman
	require.True(t, ok)
	assert.Equal(t, "Segoe UI Symbol", res.Family, "last font selection of a recording wins")
	assert.Equal(t, []GlyphIndex{700}, res.Glyphs)
	assert.True(t, p.called("link"))
	assert.True(t, p.called("analyze"))
	assert.Equal(t, p.created, p.released)
}

func TestFallbackUsesRemappedFont(t *testing.T) {
	p := newFakePlatform()
	delete(p.glyphs, "MS Gothic") // linked font does not help
	p.glyphs["Yu Gothic"] = map[rune][]GlyphIndex{'あ': {55}}
	res, ok := NewResolver(p).Resolve(descriptor("Arial"), 'あ', allStages)
	require.True(t, ok)
	assert.Equal(t, "Yu Gothic", res.Family)
	assert.Equal(t, "MS Gothic", p.probed, "analyzer should probe with the linked font")
	assert.Equal(t, p.created, p.released)
}

func TestFallbackSkippedForSpace(t *testing.T) {
	p := newFakePlatform()
	delete(p.glyphs["Arial"], ' ')
	_, ok := NewResolver(p).Resolve(descriptor("Arial"), ' ', allStages)
	assert.False(t, ok)
	assert.False(t, p.called("analyze"))
	assert.Equal(t, p.created, p.released)
}

func TestStagesSwitchedOff(t *testing.T) {
	p := newFakePlatform()
	_, ok := NewResolver(p).Resolve(descriptor("Arial"), 'あ', Options{})
	assert.False(t, ok)
	assert.False(t, p.called("codepages"))
	assert.False(t, p.called("analyze"))
}

func TestHostServiceUnavailable(t *testing.T) {
	p := newFakePlatform()
	p.missing["Arial"] = true
	_, ok := NewResolver(p).Resolve(descriptor("Arial"), 'A', allStages)
	assert.False(t, ok)
	assert.Equal(t, 0, p.created)
	_, ok = NewResolver(nil).Resolve(descriptor("Arial"), 'A', allStages)
	assert.False(t, ok)
	_, ok = NewResolver(p).Resolve(descriptor("Arial"), 0xd800, allStages)
	assert.False(t, ok, "lone surrogates are not resolvable")
}

func TestRasterizeByIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.host")
	defer teardown()
	//
	p := newFakePlatform()
	r := NewResolver(p)
	d := descriptor("Arial")
	bm := r.RasterizeByIndex("Arial", d, 36)
	require.NotNil(t, bm)
	assert.Equal(t, glyph.Success, bm.Code)
	assert.Equal(t, uint32(2), bm.Width)
	assert.Equal(t, uint32(1), bm.Height)
	assert.Equal(t, []byte{255, 255, 255, 255, 128, 128, 128, 128}, bm.Pix)
	assert.Equal(t, 1, bm.BearingX)
	assert.Equal(t, 7, bm.BearingY)
	assert.Equal(t, 9, bm.Advance)
	assert.Equal(t, font.HostHandle{Family: "Arial"}, bm.Source)
	//
	p.outlines[3] = Outline{CellIncX: 5} // space: no data at all
	bm = r.RasterizeByIndex("Arial", d, 3)
	require.NotNil(t, bm)
	assert.Equal(t, glyph.NoBitmapData, bm.Code)
	assert.Nil(t, bm.Pix)
	assert.Equal(t, 5, bm.Advance)
	//
	p.outlines[4] = Outline{Data: []byte{1, 2, 3, 4}, CellIncX: 5}
	assert.Nil(t, r.RasterizeByIndex("Arial", d, 4), "data without black box")
	assert.Nil(t, r.RasterizeByIndex("Arial", d, 0xdead))
	p.missing["Nope"] = true
	assert.Nil(t, r.RasterizeByIndex("Nope", d, 36))
	assert.Equal(t, p.created, p.released)
}

func TestRasterizeHeightFromData(t *testing.T) {
	p := newFakePlatform()
	p.outlines[5] = Outline{
		Data:      []byte{64, 64, 64, 0, 16, 16, 16, 0}, // two rows, pitch 4
		Levels:    64,
		BlackBoxX: 3,
		BlackBoxY: 5,
		CellIncX:  4,
	}
	bm := NewResolver(p).RasterizeByIndex("Arial", descriptor("Arial"), 5)
	require.NotNil(t, bm)
	assert.Equal(t, uint32(3), bm.Width)
	assert.Equal(t, uint32(2), bm.Height)
	assert.Equal(t, byte(64), bm.Pix[3*4])
}

func TestResolveGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.host")
	defer teardown()
	//
	p := newFakePlatform()
	r := NewResolver(p)
	bitmaps := r.ResolveGlyphs(descriptor("Arial"), 0x1f600, allStages)
	require.Len(t, bitmaps, 2)
	for _, bm := range bitmaps {
		assert.True(t, bm.Emoji)
		assert.Equal(t, font.HostHandle{Family: "Segoe UI Emoji"}, bm.Source)
	}
	bitmaps = r.ResolveGlyphs(descriptor("Arial"), 'A', allStages)
	require.Len(t, bitmaps, 1)
	assert.False(t, bitmaps[0].Emoji)
	assert.Empty(t, r.ResolveGlyphs(descriptor("Arial"), 0x10ffff, allStages))
	assert.Equal(t, p.created, p.released)
}

func TestRecordingLastSelectionWins(t *testing.T) {
	rec := &Recording{}
	_, ok := rec.SelectedFont()
	assert.False(t, ok)
	rec.Append(Record{Type: RecordSelectFont, Font: LogicalFont{Family: "A"}})
	rec.Append(Record{Type: RecordGlyphs})
	rec.Append(Record{Type: RecordSelectFont, Font: LogicalFont{Family: "B"}})
	rec.Append(Record{Type: RecordSelectFont})
	lf, ok := rec.SelectedFont()
	require.True(t, ok)
	assert.Equal(t, "B", lf.Family)
}

func TestIsEmoji(t *testing.T) {
	assert.True(t, IsEmoji(0x1f600))
	assert.True(t, IsEmoji(0x1f680))
	assert.False(t, IsEmoji('A'))
	assert.False(t, IsEmoji(0xa9)) // ©, text presentation
	assert.False(t, IsEmoji(0x4e2d))
}
