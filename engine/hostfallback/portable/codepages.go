package portable

import (
	"github.com/npillmayer/glyphres/core"
	"github.com/npillmayer/glyphres/core/font/fontregistry"
	"github.com/npillmayer/glyphres/engine/hostfallback"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Legacy encodings for each codepage bit, in ascending bit order.
var codepages = []struct {
	mask hostfallback.CodepageMask
	enc  encoding.Encoding
}{
	{hostfallback.CodepageLatin1, charmap.Windows1252},
	{hostfallback.CodepageLatin2, charmap.Windows1250},
	{hostfallback.CodepageCyrillic, charmap.Windows1251},
	{hostfallback.CodepageGreek, charmap.Windows1253},
	{hostfallback.CodepageTurkish, charmap.Windows1254},
	{hostfallback.CodepageHebrew, charmap.Windows1255},
	{hostfallback.CodepageArabic, charmap.Windows1256},
	{hostfallback.CodepageBaltic, charmap.Windows1257},
	{hostfallback.CodepageVietnamese, charmap.Windows1258},
	{hostfallback.CodepageThai, charmap.Windows874},
	{hostfallback.CodepageJapanese, japanese.ShiftJIS},
	{hostfallback.CodepageChineseSimp, simplifiedchinese.GBK},
	{hostfallback.CodepageKorean, korean.EUCKR},
	{hostfallback.CodepageChineseTrad, traditionalchinese.Big5},
}

// Families to link to for each codepage, most preferred first.
var linkedFamilies = map[hostfallback.CodepageMask][]string{
	hostfallback.CodepageLatin1:      {"DejaVu Sans", "Liberation Sans", "Arial", "Noto Sans"},
	hostfallback.CodepageLatin2:      {"DejaVu Sans", "Liberation Sans", "Arial", "Noto Sans"},
	hostfallback.CodepageCyrillic:    {"DejaVu Sans", "Liberation Sans", "Arial", "Noto Sans"},
	hostfallback.CodepageGreek:       {"DejaVu Sans", "Liberation Sans", "Arial", "Noto Sans"},
	hostfallback.CodepageTurkish:     {"DejaVu Sans", "Liberation Sans", "Arial", "Noto Sans"},
	hostfallback.CodepageHebrew:      {"Noto Sans Hebrew", "David", "DejaVu Sans", "Arial"},
	hostfallback.CodepageArabic:      {"Noto Sans Arabic", "Noto Naskh Arabic", "Tahoma", "DejaVu Sans"},
	hostfallback.CodepageBaltic:      {"DejaVu Sans", "Liberation Sans", "Arial", "Noto Sans"},
	hostfallback.CodepageVietnamese:  {"DejaVu Sans", "Noto Sans", "Arial", "Tahoma"},
	hostfallback.CodepageThai:        {"Noto Sans Thai", "Tahoma", "Loma", "Garuda"},
	hostfallback.CodepageJapanese:    {"Noto Sans CJK JP", "MS Gothic", "Hiragino Sans", "IPAGothic", "TakaoGothic"},
	hostfallback.CodepageChineseSimp: {"Noto Sans CJK SC", "SimSun", "Microsoft YaHei", "PingFang SC", "WenQuanYi Micro Hei"},
	hostfallback.CodepageKorean:      {"Noto Sans CJK KR", "Malgun Gothic", "Gulim", "Apple SD Gothic Neo", "NanumGothic"},
	hostfallback.CodepageChineseTrad: {"Noto Sans CJK TC", "PMingLiU", "Microsoft JhengHei", "PingFang TC"},
}

// MapCodepage returns the set of codepages able to encode a BMP code point.
func (p *Platform) MapCodepage(r rune) (hostfallback.CodepageMask, error) {
	if r < 0 || r > 0xffff {
		return 0, core.Error(core.EINVALID, "code point %#U is outside the BMP", r)
	}
	var mask hostfallback.CodepageMask
	s := string(r)
	for _, cp := range codepages {
		if _, err := cp.enc.NewEncoder().String(s); err == nil {
			mask |= cp.mask
		}
	}
	if mask == 0 {
		return 0, core.Error(core.EMISSING, "no codepage contains %#U", r)
	}
	return mask, nil
}

// LinkFont finds an installed family, different from the one of the source
// font, which is linked to one of the codepages in mask. Codepages are tried
// in ascending bit order. The linked font inherits size and style from the
// source font.
func (p *Platform) LinkFont(mask hostfallback.CodepageMask, nf hostfallback.NativeFont) (hostfallback.NativeFont, error) {
	src, err := p.native(nf)
	if err != nil {
		return nil, err
	}
	if len(p.links) == 0 {
		return nil, hostfallback.ErrCapabilityAbsent
	}
	srcFamily := fontregistry.NormalizeFontname(src.logical.Family)
	want := styleOf(src.logical)
	for _, cp := range codepages {
		if mask&cp.mask == 0 {
			continue
		}
		for _, family := range p.links[cp.mask] {
			if fontregistry.NormalizeFontname(family) == srcFamily {
				continue
			}
			if linked := p.realize(family, want, src.logical.Size); linked != nil {
				if fontregistry.NormalizeFontname(linked.logical.Family) == srcFamily {
					linked.Release()
					continue
				}
				tracer().Debugf("codepages %#x linked to %s", uint32(mask), linked.logical.Family)
				return linked, nil
			}
		}
	}
	return nil, core.Error(core.EMISSING, "no font linked to codepages %#x", uint32(mask))
}
