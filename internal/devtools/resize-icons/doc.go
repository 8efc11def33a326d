// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Resize-icons generates the icon set of a Progressive Web App.

# Usage

	$ go tool resize-icons [-watch]

Run it from the directory that contains "icon.png". The image is resized
with a Lanczos filter to 72, 96, 128, 144, 152, 192, 384 and 512 pixels
square, and each result is saved as "icons/icon-NxN.png". The "icons"
directory is created if needed; other files in it are left alone.

The source should be square. Other images are stretched.

With -watch, icons are regenerated every time "icon.png" changes until
the tool is interrupted.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
