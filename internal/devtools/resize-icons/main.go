// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/pwaicons/internal/icons"
)

func main() { cli.Main(new(app)) }

type app struct {
	watch bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.watch, "watch", false, "Regenerate icons each time the source image changes.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if len(env.Args) != 0 {
		return fmt.Errorf("%w: no arguments expected", cli.ErrInvalidArgs)
	}

	c := &icons.Config{
		Logf: func(format string, args ...any) {
			fmt.Fprintf(env.Stdout, format+"\n", args...)
		},
	}
	if a.watch {
		return icons.Watch(ctx, c)
	}

	fmt.Fprintf(env.Stdout, "Generating PWA icons from %s.\n", icons.DefaultSrc)
	if err := icons.Generate(c); err != nil {
		fmt.Fprintln(env.Stdout, "Failed to generate icons.")
		if !errors.Is(err, icons.ErrSourceMissing) {
			fmt.Fprintf(env.Stdout, "Make sure %s is a valid PNG, JPEG, GIF, WebP, BMP or TIFF image.\n", icons.DefaultSrc)
		}
		return err
	}

	names, err := icons.List(icons.DefaultDst)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "\nIcons saved to the %s directory:\n", icons.DefaultDst)
	for _, name := range names {
		fmt.Fprintf(env.Stdout, "  - %s\n", name)
	}
	return nil
}
