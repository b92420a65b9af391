package font

import (
	"testing"

	"github.com/npillmayer/glyphres/core"
	"github.com/npillmayer/glyphres/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptorSuffixes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.font")
	defer teardown()
	//
	tests := []struct {
		request      string
		name         string
		bold, italic bool
	}{
		{"Arial Bold Italic", "Arial", true, true},
		{"Arial Italic Bold", "Arial", true, true},
		{"  Times New Roman Bold ", "Times New Roman", true, false},
		{"Noto Sans", "Noto Sans", false, false},
		{"Arial bold", "Arial bold", false, false},
		{"Bold Arial", "Bold Arial", false, false},
		{"", "Arial", false, false},
		{"   ", "Arial", false, false},
		{"Italic", "Arial", false, true},
		{"Go  Mono   Bold", "Go Mono", true, false},
	}
	for _, test := range tests {
		d := ParseDescriptor(test.request, 16, "")
		assert.Equal(t, test.name, d.Name, "request %q", test.request)
		assert.Equal(t, test.bold, d.Bold, "bold for %q", test.request)
		assert.Equal(t, test.italic, d.Italic, "italic for %q", test.request)
		assert.Equal(t, uint32(16), d.Size)
		assert.Equal(t, RouteEmbedded, d.Route)
	}
}

func TestParseDescriptorIdempotent(t *testing.T) {
	for _, req := range []string{"Arial Bold Italic", "X Bold  Bold", "Bold", "Foo Italic Bar Bold", ""} {
		d := ParseDescriptor(req, 12, "Go")
		again := ParseDescriptor(d.Name, 12, "Go")
		assert.Equal(t, d.Name, again.Name, "request %q", req)
		assert.False(t, again.Bold || again.Italic, "re-parsing %q stripped a suffix", d.Name)
	}
}

func TestForHostKeepsSize(t *testing.T) {
	d := ParseDescriptor("Arial Bold", 24, "")
	h := d.ForHost()
	assert.Equal(t, RouteHostFallback, h.Route)
	assert.Equal(t, RouteEmbedded, d.Route)
	assert.Equal(t, d.Size, h.Size)
	assert.Equal(t, d.Name, h.Name)
	assert.True(t, h.Bold)
}

func TestGuessStyle(t *testing.T) {
	assert.Equal(t, StyleRegular, GuessStyle("Regular"))
	assert.Equal(t, StyleBold, GuessStyle("Bold"))
	assert.Equal(t, StyleBold|StyleItalic, GuessStyle("SemiBold Italic"))
	assert.Equal(t, StyleItalic, GuessStyle("Oblique"))
	assert.Equal(t, StyleBold, GuessStyle("Black"))
}

func TestCombinedID(t *testing.T) {
	id := CombinedID(3, 2)
	assert.Equal(t, 2<<16+3, id)
	f, i := SplitID(id)
	assert.Equal(t, 3, f)
	assert.Equal(t, 2, i)
}

func TestOpenSingleFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.font")
	defer teardown()
	//
	face, counts, err := OpenFace(fonttest.Bold, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.NumFaces)
	assert.Equal(t, 0, counts.NumInstances)
	assert.Equal(t, "Go", face.Family)
	assert.True(t, face.Style.IsBold())
	assert.False(t, face.Style.IsItalic())
	assert.True(t, face.Covers('A'))
	assert.False(t, face.Covers(0x4E00))
	t.Logf("face = %s", face)
}

func TestOpenCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.font")
	defer teardown()
	//
	ttc := fonttest.Collection(fonttest.Regular, fonttest.Italic, fonttest.Mono)
	for i, family := range []string{"Go", "Go", "Go Mono"} {
		face, counts, err := OpenFace(ttc, CombinedID(i, 0))
		require.NoError(t, err, "face #%d", i)
		assert.Equal(t, 3, counts.NumFaces)
		assert.Equal(t, family, face.Family)
		assert.Equal(t, i, face.FaceIndex)
	}
	face, _, _ := OpenFace(ttc, 1)
	assert.True(t, face.Style.IsItalic())
	_, counts, err := OpenFace(ttc, 3)
	assert.True(t, core.HasCode(err, core.EMISSING))
	assert.Equal(t, 3, counts.NumFaces)
}

func TestOpenNamedInstances(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphres.font")
	defer teardown()
	//
	blob := fonttest.WithNamedInstances(fonttest.Regular, 2, 1) // "Regular", "Go"
	face, counts, err := OpenFace(blob, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.NumInstances)
	assert.Equal(t, 0, face.InstanceIndex)
	for inst := 1; inst <= 2; inst++ {
		face, _, err = OpenFace(blob, CombinedID(0, inst))
		require.NoError(t, err)
		assert.Equal(t, inst, face.InstanceIndex)
		assert.Equal(t, inst<<16, face.CombinedID)
		assert.Equal(t, "Go", face.Family)
	}
	assert.Equal(t, "Go", face.Subfamily)
	_, _, err = OpenFace(blob, CombinedID(0, 3))
	assert.True(t, core.HasCode(err, core.EMISSING))
}

func TestOpenGarbage(t *testing.T) {
	_, counts, err := OpenFace([]byte("this is not a font at all"), 0)
	assert.Error(t, err)
	assert.Equal(t, 0, counts.NumFaces)
	for _, blob := range [][]byte{nil, {}, []byte("ttcf")} {
		var err error
		assert.NotPanics(t, func() { _, counts, err = OpenFace(blob, 0) })
		assert.True(t, core.HasCode(err, core.EINVALID), "blob = %q", blob)
		assert.Equal(t, 0, counts.NumFaces)
	}
}

func TestHandles(t *testing.T) {
	var h Handle = HostHandle{Family: "Noto Sans CJK"}
	assert.Equal(t, "host:Noto Sans CJK", h.String())
	h = EmbeddedHandle{}
	assert.Equal(t, "embedded:<nil>", h.String())
}
