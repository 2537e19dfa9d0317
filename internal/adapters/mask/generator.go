package mask

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/devbush/photoccrop/internal/domain"
	"github.com/devbush/photoccrop/internal/ports"
)

// Generator rasterizes circular masks with an anti-aliased rim
type Generator struct{}

// NewGenerator creates a mask generator
func NewGenerator() *Generator {
	return &Generator{}
}

// CircularMask draws a filled disk of radius diameter/2 centered in a
// diameter x diameter square. Pixels outside the disk have zero alpha.
func (g *Generator) CircularMask(diameter int) (*image.Alpha, error) {
	if diameter <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidDimension, diameter)
	}

	r := float64(diameter) / 2

	dc := gg.NewContext(diameter, diameter)
	dc.DrawCircle(r, r, r)
	dc.SetColor(color.White)
	dc.Fill()

	bounds := image.Rect(0, 0, diameter, diameter)
	mask := image.NewAlpha(bounds)
	draw.Draw(mask, bounds, dc.Image(), image.Point{}, draw.Src)

	return mask, nil
}

var _ ports.MaskGenerator = (*Generator)(nil)
