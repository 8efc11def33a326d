// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package icons generates the icon set of a Progressive Web App.

A single source image is resized into every size listed by Targets and each
result is written as a PNG file into the output directory:

	icons/icon-72x72.png
	icons/icon-96x96.png
	...
	icons/icon-512x512.png

Sizes and file names are fixed; the web app manifest refers to them by name.
*/
package icons

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.astrophena.name/pwaicons/internal/logger"

	"github.com/disintegration/imaging"

	// Register decoders for source formats the standard library lacks.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrSourceMissing is returned by Generate when the source image doesn't exist.
var ErrSourceMissing = errors.New("source image not found")

// Default paths, relative to the working directory.
const (
	DefaultSrc = "icon.png"
	DefaultDst = "icons"
)

// Target is a single icon of the set.
type Target struct {
	// Size is the edge length of the square icon, in pixels.
	Size int
	// Name is the file name inside the output directory.
	Name string
}

var targets = []Target{
	{Size: 72, Name: "icon-72x72.png"},
	{Size: 96, Name: "icon-96x96.png"},
	{Size: 128, Name: "icon-128x128.png"},
	{Size: 144, Name: "icon-144x144.png"},
	{Size: 152, Name: "icon-152x152.png"},
	{Size: 192, Name: "icon-192x192.png"},
	{Size: 384, Name: "icon-384x384.png"},
	{Size: 512, Name: "icon-512x512.png"},
}

// Targets returns the icons that Generate produces, smallest first.
func Targets() []Target { return slices.Clone(targets) }

// Config represents a generation configuration.
type Config struct {
	// Src is the source image. If empty, uses DefaultSrc.
	Src string
	// Dst is the directory where to write icons. If empty, uses DefaultDst.
	// It's created if it doesn't exist.
	Dst string
	// Logf receives progress messages. If nil, log.Printf is used.
	Logf logger.Logf
}

func (c *Config) setDefaults() {
	if c.Src == "" {
		c.Src = DefaultSrc
	}
	if c.Dst == "" {
		c.Dst = DefaultDst
	}
	if c.Logf == nil {
		c.Logf = log.Printf
	}
}

// Generate resizes the source image to every target and saves the results.
//
// It stops at the first failure. Icons written before that are left in place.
func Generate(c *Config) error {
	if c == nil {
		c = &Config{}
	}
	c.setDefaults()

	if _, err := os.Stat(c.Src); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, c.Src)
	} else if err != nil {
		return err
	}

	if _, err := os.Stat(c.Dst); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(c.Dst, 0o755); err != nil {
			return err
		}
		c.Logf("Created directory %s.", c.Dst)
	} else if err != nil {
		return fmt.Errorf("failed to check %s: %w", c.Dst, err)
	}

	c.Logf("Processing %s.", c.Src)
	src, err := imaging.Open(c.Src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Src, err)
	}
	// Work in NRGBA so every icon is encoded with an alpha channel, whatever
	// the source color model is.
	img := imaging.Clone(src)

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	c.Logf("Source size is %dx%d.", w, h)
	if w != h {
		c.Logf("Warning: %s is not square, icons will be stretched.", c.Src)
	}

	for _, t := range targets {
		path := filepath.Join(c.Dst, t.Name)
		if err := write(img, t.Size, path); err != nil {
			return err
		}
		c.Logf("Generated %s (%dx%d).", path, t.Size, t.Size)
	}

	c.Logf("Generated %d icons.", len(targets))
	return nil
}

func write(img image.Image, size int, path string) error {
	resized := imaging.Resize(img, size, size, imaging.Lanczos)
	if err := imaging.Save(resized, path, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// List returns sorted names of PNG files in dir.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
