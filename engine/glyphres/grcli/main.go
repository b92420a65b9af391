/*
Command grcli is an interactive glyph resolver.

Fonts are loaded from files, then code points are resolved with the
currently selected font request. Glyphs are previewed as ASCII shading.

    glyph > load Go-Regular.ttf
    glyph > font Go Bold 24
    glyph > glyph A
    glyph > glyph U+1F600

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphres/core"
	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/font/fontregistry"
	"github.com/npillmayer/glyphres/core/glyph"
	"github.com/npillmayer/glyphres/core/locate/systemfonts"
	"github.com/npillmayer/glyphres/engine/glyphres"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphres.cli'
func tracer() tracing.Trace {
	return tracing.Select("glyphres.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontfile := flag.String("font", "", "Font file to load")
	fontreq := flag.String("request", "", "Font request, e.g. \"Arial Bold\"")
	size := flag.Uint("size", 24, "Font size in pixels")
	fc := flag.String("fontconfig", "", "Path of fontconfig's fc-list")
	fontdirs := flag.String("fontdirs", "", "Additional font directories")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":         "go",
		"trace.glyphres.cli":      *tlevel,
		"trace.glyphres.pipeline": *tlevel,
		"trace.glyphres.registry": *tlevel,
		"trace.glyphres.host":     *tlevel,
		"trace.glyphres.sysfonts": *tlevel,
		"trace.glyphres.font":     *tlevel,
		"app-key":                 "glyphres",
	}
	if *fc != "" {
		conf["fontconfig"] = *fc
	}
	if *fontdirs != "" {
		conf["glyphres.font-dirs"] = *fontdirs
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the glyph resolver CLI")
	//
	// set up REPL
	repl, err := readline.New("glyph > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, engine: glyphres.New(conf)}
	if *fontfile != "" {
		if err := intp.loadFont(*fontfile); err != nil { // font name provided by flag
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	intp.selectFont(*fontreq, uint32(*size))
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	engine *glyphres.Engine
	desc   *font.Descriptor
	repl   *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd := parseCommand(line)
		quit, err := intp.execute(cmd)
		if err != nil {
			core.UserError(err)
			tracer().Debugf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op codes of commands
const (
	QUIT int = iota
	HELP
	LOAD
	FONT
	GLYPH
	FAMILIES
	SYSFONTS
	REFRESH
)

// Command is a parsed input line.
type Command struct {
	code int
	args []string
}

func parseCommand(line string) Command {
	fields := strings.Fields(line)
	cmd := Command{code: HELP, args: fields[1:]}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		cmd.code = QUIT
	case "load":
		cmd.code = LOAD
	case "font":
		cmd.code = FONT
	case "glyph", "g":
		cmd.code = GLYPH
	case "families":
		cmd.code = FAMILIES
	case "sysfonts":
		cmd.code = SYSFONTS
	case "refresh":
		cmd.code = REFRESH
	default:
		cmd.args = fields
	}
	tracer().Debugf("parse command = %v", cmd)
	return cmd
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help(strings.Join(cmd.args, " "))
	case LOAD:
		if len(cmd.args) == 0 {
			return false, core.Error(core.EMISSING, "usage: load <font file>")
		}
		return false, intp.loadFont(strings.Join(cmd.args, " "))
	case FONT:
		name, size, err := parseFontRequest(cmd.args)
		if err != nil {
			return false, err
		}
		intp.selectFont(name, size)
	case GLYPH:
		if len(cmd.args) == 0 {
			return false, core.Error(core.EMISSING, "usage: glyph <char|U+XXXX>")
		}
		cp, err := parseCodePoint(cmd.args[0])
		if err != nil {
			return false, err
		}
		intp.showGlyph(cp)
	case FAMILIES:
		for _, family := range intp.engine.Families() {
			pterm.Printfln("  %s", family)
		}
	case SYSFONTS:
		showSystemFonts(intp.engine.SystemFonts(false), strings.Join(cmd.args, " "))
	case REFRESH:
		fonts := intp.engine.SystemFonts(true)
		pterm.Info.Printfln("%d host font families", len(fonts))
	}
	return false, nil
}

func (intp *Intp) loadFont(fontfile string) error {
	if _, err := os.Stat(fontfile); err != nil {
		if fontfile, err = systemfonts.FindFile(fontfile); err != nil {
			return err
		}
	}
	data, err := os.ReadFile(fontfile)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	family := intp.engine.LoadFont(data)
	if family == "" {
		return core.Error(core.EINVALID, "%s does not contain a usable font", fontfile)
	}
	pterm.Info.Printfln("loaded family %s from %s", family, fontfile)
	return nil
}

func (intp *Intp) selectFont(name string, size uint32) {
	if intp.desc != nil {
		intp.engine.DestroyFontDescriptor(intp.desc)
	}
	intp.desc = intp.engine.CreateFontDescriptor(name, size)
	pterm.Info.Printfln("font is %s", intp.desc)
}

func (intp *Intp) showGlyph(cp rune) {
	bitmaps := intp.engine.ResolveGlyph(intp.desc, cp)
	if len(bitmaps) == 0 {
		pterm.Error.Printfln("no font renders %#U, using default glyph", cp)
		bitmaps = append(bitmaps, intp.engine.DefaultGlyph())
	}
	for _, bm := range bitmaps {
		pterm.Printfln("%#U: %s emoji=%v", cp, bm, bm.Emoji)
		if bm.Code == glyph.Success {
			pterm.Println(preview(bm))
		}
	}
}

func showSystemFonts(fonts []systemfonts.FontInfo, pattern string) {
	prefix := fontregistry.NormalizeFontname(pattern)
	n := 0
	for _, fi := range fonts {
		if !strings.HasPrefix(fontregistry.NormalizeFontname(fi.Family), prefix) {
			continue
		}
		n++
		styles := make([]string, len(fi.Faces))
		for i, face := range fi.Faces {
			styles[i] = face.Subfamily
			if styles[i] == "" {
				styles[i] = face.Style.String()
			}
		}
		pterm.Printfln("  %-32s %s", fi.Family, strings.Join(styles, ", "))
	}
	pterm.Info.Printfln("%d families", n)
}

// parseFontRequest splits arguments like "Times New Roman Bold 24" into a
// font request and a size. A missing size defaults to 24 pixels.
func parseFontRequest(args []string) (string, uint32, error) {
	if len(args) == 0 {
		return "", 0, core.Error(core.EMISSING, "usage: font <name> [size]")
	}
	size := uint64(24)
	if n, err := strconv.ParseUint(args[len(args)-1], 10, 32); err == nil {
		size = n
		args = args[:len(args)-1]
	}
	if size == 0 {
		return "", 0, core.Error(core.EINVALID, "font size must be positive")
	}
	return strings.Join(args, " "), uint32(size), nil
}

// parseCodePoint accepts a single character, "U+XXXX" or "0xXXXX".
func parseCodePoint(arg string) (rune, error) {
	upper := strings.ToUpper(arg)
	for _, prefix := range []string{"U+", "0X"} {
		if strings.HasPrefix(upper, prefix) && len(arg) > len(prefix) {
			n, err := strconv.ParseUint(arg[len(prefix):], 16, 32)
			if err != nil || !utf8.ValidRune(rune(n)) {
				return 0, core.Error(core.EINVALID, "not a code point: %s", arg)
			}
			return rune(n), nil
		}
	}
	r, size := utf8.DecodeRuneInString(arg)
	if r == utf8.RuneError || size != len(arg) {
		return 0, core.Error(core.EINVALID, "expected a single character: %s", arg)
	}
	return r, nil
}

const shades = " .:-=+*#%@"

// preview draws a bitmap as ASCII shading of its alpha channel.
func preview(bm *glyph.Bitmap) string {
	var sb strings.Builder
	w, h := int(bm.Width), int(bm.Height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := int(bm.Pix[(y*w+x)*4+3])
			sb.WriteByte(shades[a*(len(shades)-1)/255])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	switch strings.ToLower(topic) {
	case "font":
		pterm.Info.Println("font <name> [size]")
		pterm.Println(`
	Selects the font request for subsequent glyph commands.
	Trailing "Bold" and "Italic" select the style, e.g.

	    font Times New Roman Bold Italic 32
	`)
	case "glyph", "g":
		pterm.Info.Println("glyph <char|U+XXXX|0xXXXX>")
		pterm.Println(`
	Resolves a code point with the current font request. Loaded fonts
	are tried first, then the host's fonts.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load <file>          load a font file (path or file name of a host font)
	font <name> [size]   select the font request
	glyph <char>         resolve and preview a code point
	families             list the families of loaded fonts
	sysfonts [prefix]    list host font families
	refresh              enumerate host fonts again
	help [command]       show help
	quit                 leave
	`)
	}
}
