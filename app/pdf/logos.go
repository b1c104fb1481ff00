package pdf

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// LogoProvider supplies raw PNG bytes for university column headers and the
// document banner. Any failure falls back to rendering the short name as
// text; a provider error never aborts the document.
type LogoProvider interface {
	Logo(shortName string) ([]byte, error)
	Banner() ([]byte, error)
}

// DirProvider reads logos from a directory: LOGO_<SHORT>.png per university
// and logo.png for the banner.
type DirProvider struct {
	Dir string
}

func (p DirProvider) Logo(shortName string) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.Dir, "LOGO_"+shortName+".png"))
}

func (p DirProvider) Banner() ([]byte, error) {
	return os.ReadFile(filepath.Join(p.Dir, "logo.png"))
}

type registeredLogo struct {
	name   string
	width  float64
	height float64
}

func pngOptions() gofpdf.ImageOptions {
	return gofpdf.ImageOptions{ImageType: "PNG"}
}

// registerLogos pre-registers every available image with the document, keyed
// by university short name (the banner under "banner"). Bytes are
// PNG-validated first: handing gofpdf a broken image would set its sticky
// error and poison the whole document, while a validation failure here just
// means the text fallback is used.
func (d *doc) registerLogos(provider LogoProvider) {
	d.uniLogos = make(map[string]registeredLogo)
	if provider == nil {
		return
	}

	if data, err := provider.Banner(); err == nil {
		if lg, ok := d.registerPNG("banner", data); ok {
			d.bannerLogo = "banner"
			d.uniLogos["banner"] = lg
		}
	}

	for _, name := range d.payload.Names() {
		data, err := provider.Logo(name)
		if err != nil {
			continue
		}
		if lg, ok := d.registerPNG("uni_"+name, data); ok {
			d.uniLogos[name] = lg
		}
	}
}

func (d *doc) registerPNG(key string, data []byte) (registeredLogo, bool) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return registeredLogo{}, false
	}
	name := "logo_" + key
	info := d.pdf.RegisterImageOptionsReader(name, pngOptions(), bytes.NewReader(data))
	if info == nil || d.pdf.Err() {
		return registeredLogo{}, false
	}
	return registeredLogo{name: name, width: float64(cfg.Width), height: float64(cfg.Height)}, true
}

// hasLogo reports whether a registered image exists for the key.
func (d *doc) hasLogo(key string) bool {
	_, ok := d.uniLogos[key]
	return ok
}

// drawLogo places a registered image inside a bounding box, scaled to fit and
// centered, preserving aspect ratio.
func (d *doc) drawLogo(key string, x, y, boxW, boxH float64) {
	lg, ok := d.uniLogos[key]
	if !ok {
		return
	}
	scale := boxW / lg.width
	if s := boxH / lg.height; s < scale {
		scale = s
	}
	w := lg.width * scale
	h := lg.height * scale
	d.pdf.ImageOptions(lg.name, x+(boxW-w)/2, y+(boxH-h)/2, w, h, false, pngOptions(), 0, "")
}
