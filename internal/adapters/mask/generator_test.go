package mask

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbush/photoccrop/internal/domain"
)

func TestGenerator_CircularMask_Disk(t *testing.T) {
	gen := NewGenerator()

	for _, d := range []int{4, 10, 33, 100, 301} {
		t.Run(fmt.Sprintf("diameter %d", d), func(t *testing.T) {
			m, err := gen.CircularMask(d)
			require.NoError(t, err)
			require.Equal(t, d, m.Bounds().Dx())
			require.Equal(t, d, m.Bounds().Dy())

			r := float64(d) / 2
			for y := 0; y < d; y++ {
				for x := 0; x < d; x++ {
					dist := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
					a := m.AlphaAt(x, y).A
					switch {
					case dist <= r-1:
						if a != 0xff {
							t.Fatalf("pixel (%d,%d) at distance %.2f inside disk has alpha %d", x, y, dist, a)
						}
					case dist >= r+1:
						if a != 0 {
							t.Fatalf("pixel (%d,%d) at distance %.2f outside disk has alpha %d", x, y, dist, a)
						}
					}
				}
			}
		})
	}
}

func TestGenerator_CircularMask_CornersTransparent(t *testing.T) {
	m, err := NewGenerator().CircularMask(50)
	require.NoError(t, err)

	assert.Zero(t, m.AlphaAt(0, 0).A)
	assert.Zero(t, m.AlphaAt(49, 0).A)
	assert.Zero(t, m.AlphaAt(0, 49).A)
	assert.Zero(t, m.AlphaAt(49, 49).A)
	assert.Equal(t, uint8(0xff), m.AlphaAt(25, 25).A)
}

func TestGenerator_CircularMask_InvalidDimension(t *testing.T) {
	gen := NewGenerator()

	for _, d := range []int{0, -1, -300} {
		_, err := gen.CircularMask(d)
		if !errors.Is(err, domain.ErrInvalidDimension) {
			t.Errorf("CircularMask(%d) error = %v, want ErrInvalidDimension", d, err)
		}
	}
}
