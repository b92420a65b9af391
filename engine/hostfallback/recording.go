package hostfallback

// RecordType tags the records of a recording.
type RecordType int

// Types of records
const (
	RecordSelectFont RecordType = iota + 1 // a font has been created and selected
	RecordGlyphs                           // glyphs have been output
)

// Record is a single drawing operation of a recording.
type Record struct {
	Type   RecordType
	Font   LogicalFont  // for RecordSelectFont
	Glyphs []GlyphIndex // for RecordGlyphs
}

// Recording collects the drawing operations of a layout run, like a metafile does.
type Recording struct {
	Records []Record
}

// Append adds a record.
func (rec *Recording) Append(r Record) {
	rec.Records = append(rec.Records, r)
}

// SelectedFont scans the recording for font selections. If the recording
// selects more than one font, the last one wins.
func (rec *Recording) SelectedFont() (LogicalFont, bool) {
	if rec == nil {
		return LogicalFont{}, false
	}
	for i := len(rec.Records) - 1; i >= 0; i-- {
		if r := rec.Records[i]; r.Type == RecordSelectFont && r.Font.Family != "" {
			return r.Font, true
		}
	}
	return LogicalFont{}, false
}
