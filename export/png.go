// Package export renders resolved palette selections into PNG swatch strips.
package export

import (
	"bytes"
	"fmt"
	"image"
	imgcolor "image/color"
	"image/png"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/filesystem"
	"github.com/atma-cli/atma/palette"
)

// PNG writes one square swatch per selected cell, left to right, into a PNG
// file. Cells without a resolvable color are an error.
func PNG(p *palette.Palette, sels []cell.Selection, path string, swatch int) error {
	if swatch <= 0 {
		swatch = 32
	}

	var colors []imgcolor.NRGBA
	for _, sel := range sels {
		idxs, err := p.Select(sel)
		if err != nil {
			return err
		}
		for _, idx := range idxs {
			c, err := p.Color(cell.Index(idx))
			if err != nil {
				return err
			}
			col, ok := c.Get()
			if !ok {
				return fmt.Errorf("cell :%d has no color to export", idx)
			}
			colors = append(colors, imgcolor.NRGBA{R: col.R, G: col.G, B: col.B, A: 255})
		}
	}
	if len(colors) == 0 {
		return fmt.Errorf("nothing to export")
	}

	img := image.NewNRGBA(image.Rect(0, 0, swatch*len(colors), swatch))
	for i, col := range colors {
		for y := 0; y < swatch; y++ {
			for x := 0; x < swatch; x++ {
				img.SetNRGBA(i*swatch+x, y, col)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return filesystem.API().WriteFile(path, buf.Bytes(), 0644)
}
