package fontregistry

import (
	"testing"

	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/glyph"
	"github.com/npillmayer/glyphres/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSingleFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.registry")
	defer teardown()
	//
	fr := NewRegistry("")
	blob := append([]byte(nil), fonttest.Regular...)
	family := fr.Load(blob)
	assert.Equal(t, "Go", family)
	for i := range blob { // caller may re-use its buffer
		blob[i] = 0
	}
	face, bm := fr.FindBestFace(fr.Create("Go", 24), 'g')
	require.NotNil(t, bm)
	assert.Equal(t, glyph.Success, bm.Code)
	assert.NotNil(t, face)
	fr.LogFontList()
}

func TestLoadMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.registry")
	defer teardown()
	//
	fr := NewRegistry("")
	assert.Equal(t, "", fr.Load([]byte("no font")))
	assert.Equal(t, "", fr.Load(nil))
	assert.Empty(t, fr.Families())
}

func TestFaceAddressing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.registry")
	defer teardown()
	//
	fr := NewRegistry("")
	variable := fonttest.WithNamedInstances(fonttest.Regular, 2, 4)
	ttc := fonttest.Collection(variable, fonttest.Bold)
	require.Equal(t, "Go", fr.Load(ttc))
	faces := fr.Faces("Go")
	require.Len(t, faces, 4) // default + 2 named instances, then the bold face
	expected := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}}
	for i, face := range faces {
		assert.Equal(t, expected[i][0], face.FaceIndex, "face %d", i)
		assert.Equal(t, expected[i][1], face.InstanceIndex, "face %d", i)
		assert.Equal(t, face.InstanceIndex<<16+face.FaceIndex, face.CombinedID)
	}
}

func TestFamilyOrder(t *testing.T) {
	fr := NewRegistry("")
	fr.Load(fonttest.Mono)
	fr.Load(fonttest.Italic)
	fr.Load(fonttest.Regular)
	assert.Equal(t, []string{"Go Mono", "Go"}, fr.Families())
	faces := fr.Faces("Go")
	require.Len(t, faces, 2)
	assert.True(t, faces[0].Style.IsItalic())
	assert.Nil(t, fr.Faces("Helvetica"))
}

func TestStrictStylePass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.registry")
	defer teardown()
	//
	fr := NewRegistry("")
	fr.Load(fonttest.Regular)
	fr.Load(fonttest.Bold)
	face, bm := fr.FindBestFace(fr.Create("Go Bold", 16), 'x')
	require.NotNil(t, bm)
	assert.True(t, face.Style.IsBold(), "bold face expected, got %s", face)
	face, _ = fr.FindBestFace(fr.Create("Go", 16), 'x')
	assert.False(t, face.Style.IsBold(), "first face in load order expected, got %s", face)
}

func TestRelaxedStylePass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.registry")
	defer teardown()
	//
	fr := NewRegistry("")
	fr.Load(fonttest.Regular)
	d := fr.Create("Go Bold Italic", 16)
	require.True(t, d.Bold && d.Italic)
	face, bm := fr.FindBestFace(d, 'x')
	require.NotNil(t, bm, "relaxed pass should fall back to the regular face")
	assert.Equal(t, glyph.Success, bm.Code)
	assert.Equal(t, font.StyleRegular, face.Style)
}

func TestMissingGlyphOrFamily(t *testing.T) {
	fr := NewRegistry("")
	fr.Load(fonttest.Regular)
	face, bm := fr.FindBestFace(fr.Create("Go", 16), 0x4E2D)
	assert.Nil(t, face)
	assert.Nil(t, bm)
	_, bm = fr.FindBestFace(fr.Create("Helvetica", 16), 'A')
	assert.Nil(t, bm)
}

func TestSpaceIsNotAMiss(t *testing.T) {
	fr := NewRegistry("")
	fr.Load(fonttest.Regular)
	_, bm := fr.FindBestFace(fr.Create("Go", 16), ' ')
	require.NotNil(t, bm)
	assert.Equal(t, glyph.NoBitmapData, bm.Code)
}

func TestDefaultFamily(t *testing.T) {
	fr := NewRegistry("Go")
	d := fr.Create("", 10)
	assert.Equal(t, "Go", d.Name)
	fr.Destroy(&d)
	fr.Destroy(nil)
	assert.Equal(t, "Arial", NewRegistry("").Create(" ", 10).Name)
}

func TestMatching(t *testing.T) {
	assert.Equal(t, "dejavu sans mono", NormalizeFontname(" DejaVu_Sans-Mono.ttf"))
	assert.Equal(t, font.StyleBold|font.StyleItalic, StyleFromFilename("/fonts/Go-BoldItalic.ttf"))
	assert.Equal(t, font.StyleRegular, StyleFromFilename("Go-Regular.ttf"))
	assert.Equal(t, PerfectConfidence, MatchStyle(font.StyleBold, font.StyleBold))
	assert.Equal(t, HighConfidence, MatchStyle(font.StyleRegular, font.StyleBold))
	assert.Equal(t, LowConfidence, MatchStyle(font.StyleItalic, font.StyleBold))
	cands := []font.StyleFlags{font.StyleRegular, font.StyleItalic, font.StyleBold | font.StyleItalic}
	i, c := ClosestMatch(cands, font.StyleBold)
	assert.Equal(t, 0, i)
	assert.Equal(t, HighConfidence, c)
	i, c = ClosestMatch(cands, font.StyleItalic)
	assert.Equal(t, 1, i)
	assert.Equal(t, PerfectConfidence, c)
	i, _ = ClosestMatch(nil, font.StyleItalic)
	assert.Equal(t, -1, i)
}
