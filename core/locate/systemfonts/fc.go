package systemfonts

import (
	"bufio"
	"errors"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/npillmayer/glyphres/core"
	"github.com/npillmayer/glyphres/core/font"
	"github.com/npillmayer/glyphres/core/font/fontregistry"
	"github.com/npillmayer/schuko"
)

func findFontConfigBinary(conf schuko.Configuration) (path string, err error) {
	path = conf.GetString("fontconfig")
	if path == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
		err = errors.New("fontconfig not configured")
	}
	return
}

// cacheFontConfigList writes the output of fc-list to the user's config directory,
// sub-folder `app-key`. An existing list is re-used unless update is set.
func cacheFontConfigList(conf schuko.Configuration, update bool) (string, bool) {
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return "", false
	}
	appkey := conf.GetString("app-key")
	tracer().Debugf("config[app-key] = %s", appkey)
	uconfdir, err := os.UserConfigDir()
	if appkey == "" || err != nil {
		tracer().Errorf("user config directory not set")
		return "", false
	}
	fcListFilename := path.Join(uconfdir, appkey, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil {
		if !update {
			return fcListFilename, true
		}
	} else { // create config sub-dir for this application
		dir := path.Join(uconfdir, appkey)
		if _, err = os.Stat(dir); os.IsNotExist(err) {
			if err = os.MkdirAll(dir, 0755); err != nil {
				err = core.WrapError(err, core.EINVALID,
					"user configuration path cannot be created: %s", dir)
				core.UserError(err)
				return "", false
			}
		}
	}
	if !path.IsAbs(fcpath) {
		err = core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
		core.UserError(err)
		return "", false
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
		core.UserError(err)
		return "", false
	}
	fontlistFile, err := os.Create(fcListFilename)
	if err == nil {
		fccmd := exec.Command(fcpath)
		fccmd.Stdout = fontlistFile
		err = fccmd.Run()
		fontlistFile.Close()
	}
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename)
		core.UserError(err)
		return "", false
	}
	return fcListFilename, true
}

// loadFontConfigList reads the cached output of fc-list. Lines look like
//
//     /usr/share/fonts/dejavu/DejaVuSans-Bold.ttf: DejaVu Sans:style=Bold
//
// fc-list does not tell face indices of collections; they are marked with
// index -1 and resolved when the face is opened.
func loadFontConfigList(conf schuko.Configuration, update bool) ([]FaceInfo, bool) {
	if conf == nil {
		return nil, false
	}
	fclist, ok := cacheFontConfigList(conf, update)
	if !ok {
		return nil, false
	}
	fc, err := os.Open(fclist)
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig font list cannot be opened: %s", fclist)
		core.UserError(err)
		return nil, false
	}
	defer fc.Close()
	return parseFontConfigList(bufio.NewScanner(fc))
}

func parseFontConfigList(scanner *bufio.Scanner) ([]FaceInfo, bool) {
	var faces []FaceInfo
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 2 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		if !isFontFile(fontpath) {
			continue
		}
		family := strings.TrimSpace(strings.Split(fields[1], ",")[0])
		family = strings.TrimPrefix(family, ".")
		if family == "" {
			continue
		}
		fi := FaceInfo{Path: fontpath, Family: family}
		if len(fields) > 2 {
			style := strings.TrimSpace(fields[2])
			style = strings.TrimPrefix(style, "style=")
			fi.Subfamily = strings.Split(style, ",")[0]
			fi.Style = font.GuessStyle(fi.Subfamily)
		} else {
			fi.Style = fontregistry.StyleFromFilename(fontpath)
		}
		if isCollection(fontpath) {
			fi.Index = -1
		}
		faces = append(faces, fi)
	}
	if err := scanner.Err(); err != nil {
		err = core.WrapError(err, core.EINVALID, "encountered a problem during reading of fontconfig font list")
		core.UserError(err)
		return faces, false
	}
	return faces, true
}

func isFontFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

func isCollection(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".ttc" || ext == ".otc"
}
