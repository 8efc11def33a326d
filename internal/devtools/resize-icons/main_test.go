// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/base/testutil"
	"go.astrophena.name/pwaicons/internal/icons"
)

// run executes the command in a fresh working directory, after calling
// setup there, and returns its output.
func run(t *testing.T, setup func(t *testing.T), args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	if setup != nil {
		setup(t)
	}

	var stdout bytes.Buffer
	ctx := cli.WithEnv(context.Background(), &cli.Env{
		Args:   args,
		Stdout: &stdout,
		Stderr: &stdout,
	})
	err := new(app).Run(ctx)
	return stdout.String(), err
}

func writeSource(t *testing.T) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1024, 1024))
	for y := range 1024 {
		for x := range 1024 {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	f, err := os.Create(icons.DefaultSrc)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	out, err := run(t, writeSource)
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out)
	}

	for _, tg := range icons.Targets() {
		f, err := os.Open(filepath.Join(icons.DefaultDst, tg.Name))
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", tg.Name, err)
		}
		if cfg.Width != tg.Size || cfg.Height != tg.Size {
			t.Errorf("%s: want %dx%d, got %dx%d", tg.Name, tg.Size, tg.Size, cfg.Width, cfg.Height)
		}
	}

	for _, want := range []string{
		"Generating PWA icons from icon.png.",
		"Created directory icons.",
		"Source size is 1024x1024.",
		"Generated icons/icon-72x72.png (72x72).",
		"Generated icons/icon-512x512.png (512x512).",
		"Icons saved to the icons directory:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output doesn't contain %q:\n%s", want, out)
		}
	}

	// Listing is sorted by name, so the order differs from Targets.
	_, after, ok := strings.Cut(out, "Icons saved to the icons directory:\n")
	if !ok {
		t.Fatalf("no listing in output:\n%s", out)
	}
	got := strings.Split(strings.TrimSuffix(after, "\n"), "\n")
	testutil.AssertEqual(t, got, []string{
		"  - icon-128x128.png",
		"  - icon-144x144.png",
		"  - icon-152x152.png",
		"  - icon-192x192.png",
		"  - icon-384x384.png",
		"  - icon-512x512.png",
		"  - icon-72x72.png",
		"  - icon-96x96.png",
	})
}

func TestRunFailures(t *testing.T) {
	cases := map[string]struct {
		setup       func(t *testing.T)
		args        []string
		wantErr     error
		wantOut     []string
		dontWant    []string
		noOutputDir bool
	}{
		"extra arguments": {
			args:     []string{"logo.png"},
			wantErr:  cli.ErrInvalidArgs,
			dontWant: []string{"Generating"},
		},
		"missing source": {
			wantErr:     icons.ErrSourceMissing,
			wantOut:     []string{"Failed to generate icons."},
			dontWant:    []string{"Make sure", "Created directory"},
			noOutputDir: true,
		},
		"corrupt source": {
			setup: func(t *testing.T) {
				if err := os.WriteFile(icons.DefaultSrc, []byte("not an image"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantOut: []string{
				"Failed to generate icons.",
				"Make sure icon.png is a valid PNG, JPEG, GIF, WebP, BMP or TIFF image.",
			},
			dontWant: []string{"Icons saved"},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, tc.setup, tc.args...)
			if err == nil {
				t.Fatalf("want error, got nil:\n%s", out)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
			for _, want := range tc.wantOut {
				if !strings.Contains(out, want) {
					t.Errorf("output doesn't contain %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tc.dontWant {
				if strings.Contains(out, unwanted) {
					t.Errorf("output contains %q:\n%s", unwanted, out)
				}
			}
			if tc.noOutputDir {
				if _, err := os.Stat(icons.DefaultDst); !errors.Is(err, os.ErrNotExist) {
					t.Errorf("output directory shouldn't be created, stat returned %v", err)
				}
			}
		})
	}
}
