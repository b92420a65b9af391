package glyph

// FullCoverage is the coverage level of a fully covered pixel in 8-bit buffers.
const FullCoverage = 255

// Coverage is an 8-bit-per-pixel grayscale buffer of anti-aliased glyph
// intensity. Rows start every Stride bytes. Levels is the value of a fully
// covered pixel: 255 for ordinary 8-bit buffers, less for rasterizers which
// deliver a sub-range (GDI's gray outlines use 64).
type Coverage struct {
	Pix           []byte
	Width, Height int
	Stride        int
	Levels        int
}

// Empty is a predicate: does this buffer hold no pixels?
func (c Coverage) Empty() bool {
	return c.Width <= 0 || c.Height <= 0 || len(c.Pix) == 0
}

// Expand converts a coverage buffer into a densely packed RGBA buffer, replicating
// every coverage value into all four channels. Values of sub-range buffers are
// scaled up to 0…255, with everything at or above Levels mapped to 255.
func Expand(cov Coverage) []byte {
	if cov.Empty() {
		return nil
	}
	stride := cov.Stride
	if stride < cov.Width {
		stride = cov.Width
	}
	levels := cov.Levels
	if levels <= 0 {
		levels = FullCoverage
	}
	rgba := make([]byte, cov.Width*cov.Height*4)
	for y := 0; y < cov.Height; y++ {
		row := cov.Pix[y*stride:]
		if len(row) < cov.Width { // truncated source buffer
			tracer().Errorf("coverage buffer truncated at row %d of %d", y, cov.Height)
			break
		}
		for x := 0; x < cov.Width; x++ {
			v := scale(row[x], levels)
			off := (y*cov.Width + x) * 4
			rgba[off] = v
			rgba[off+1] = v
			rgba[off+2] = v
			rgba[off+3] = v
		}
	}
	return rgba
}

func scale(v byte, levels int) byte {
	if levels >= FullCoverage {
		return v
	}
	if int(v) >= levels {
		return FullCoverage
	}
	if levels == 64 {
		return v * 4
	}
	return byte(int(v) * FullCoverage / levels)
}
