package pipeline

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-enhancement/internal/catalog"
	"image-enhancement/internal/raster"
)

func quietPipeline() *Pipeline {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger)
}

func uniformGray(t *testing.T, w, h int, v byte) *raster.Buffer {
	t.Helper()
	buf, err := raster.New(w, h)
	require.NoError(t, err)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = v
		buf.Pix[i+1] = v
		buf.Pix[i+2] = v
		buf.Pix[i+3] = 255
	}
	return buf
}

func TestEnhanceUniformGrayBalancedStandardWeb(t *testing.T) {
	// Analytic end-to-end case: 4×4 uniform gray 128, Balanced preset,
	// Standard Web (72 dpi ⇒ scale 1 ⇒ stays 4×4).
	//
	// Resample preserves uniform input. Denoise (strength 0.3, radius 1) and
	// deblur (strength 0.5, radius 2, no full window fits in 4×4) are
	// no-ops on uniform data. Tone with unity multipliers keeps 128. Sharpen
	// (1.1 ⇒ boost 0.08) scales the 2×2 interior by the un-normalized kernel
	// sum: 128 * 1.08 = 138.24 → 138; the outer ring stays 128.
	cat := catalog.Default()
	preset, err := cat.Preset("Balanced")
	require.NoError(t, err)
	target, err := cat.Resolution("Standard Web")
	require.NoError(t, err)

	src := uniformGray(t, 4, 4, 128)
	out, err := quietPipeline().Enhance(src, target, preset.Settings)
	require.NoError(t, err)

	require.Equal(t, 4, out.Width)
	require.Equal(t, 4, out.Height)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := out.Offset(x, y)
			want := byte(128)
			if x >= 1 && x <= 2 && y >= 1 && y <= 2 {
				want = 138
			}
			for ch := 0; ch < 3; ch++ {
				assert.Equal(t, want, out.Pix[i+ch], "pixel (%d,%d) channel %d", x, y, ch)
			}
			assert.EqualValues(t, 255, out.Pix[i+3], "alpha at (%d,%d)", x, y)
		}
	}
}

func TestEnhanceFullCatalogProduct(t *testing.T) {
	cat := catalog.Default()
	pipe := quietPipeline()

	src, err := raster.New(16, 16)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = byte(rng.Intn(256))
		src.Pix[i+1] = byte(rng.Intn(256))
		src.Pix[i+2] = byte(rng.Intn(256))
		src.Pix[i+3] = 255
	}

	for _, target := range cat.Resolutions() {
		for _, preset := range cat.Presets() {
			t.Run(fmt.Sprintf("%s/%s", target.Name, preset.Name), func(t *testing.T) {
				out, err := pipe.Enhance(src, target, preset.Settings)
				require.NoError(t, err)

				wantW := int(math.Round(16 * target.ScaleFactor()))
				assert.Equal(t, wantW, out.Width)
				assert.Equal(t, wantW, out.Height)
				require.NoError(t, out.Validate())

				for i := 3; i < len(out.Pix); i += 4 {
					if out.Pix[i] != 255 {
						t.Fatalf("alpha modified at byte %d", i)
					}
				}
			})
		}
	}
}

func TestEnhanceLeavesSourceUntouched(t *testing.T) {
	cat := catalog.Default()
	preset, _ := cat.Preset("HDR")
	target, _ := cat.Resolution("Medium Quality")

	src := uniformGray(t, 8, 8, 77)
	before := append([]byte(nil), src.Pix...)

	_, err := quietPipeline().Enhance(src, target, preset.Settings)
	require.NoError(t, err)
	assert.Equal(t, before, src.Pix)
}

func TestEnhanceRejectsInvalidBuffer(t *testing.T) {
	cat := catalog.Default()
	preset, _ := cat.Preset("Balanced")
	target, _ := cat.Resolution("Standard Web")

	bad := &raster.Buffer{Width: 0, Height: 4, Pix: nil}
	_, err := quietPipeline().Enhance(bad, target, preset.Settings)
	assert.ErrorIs(t, err, raster.ErrInvalidDimension)

	mismatched := &raster.Buffer{Width: 4, Height: 4, Pix: make([]byte, 5)}
	_, err = quietPipeline().Enhance(mismatched, target, preset.Settings)
	assert.ErrorIs(t, err, raster.ErrInvalidDimension)
}

func TestEnhanceRejectsInvalidConfiguration(t *testing.T) {
	cat := catalog.Default()
	preset, _ := cat.Preset("Balanced")
	target, _ := cat.Resolution("Standard Web")
	src := uniformGray(t, 4, 4, 128)

	_, err := quietPipeline().Enhance(src, catalog.Resolution{Name: "broken", DPI: 0}, preset.Settings)
	assert.ErrorIs(t, err, catalog.ErrInvalidConfiguration)

	badSettings := preset.Settings
	badSettings.Brightness = 0
	_, err = quietPipeline().Enhance(src, target, badSettings)
	assert.ErrorIs(t, err, catalog.ErrInvalidConfiguration)
}

func TestEnhanceAcceptsOutOfCatalogTuple(t *testing.T) {
	// Boundary validation, not catalog membership, gates the call.
	custom := catalog.Settings{Brightness: 1.3, Contrast: 0.9, Sharpness: 2.0, Deblur: 0.2, Denoise: 0.1}
	target := catalog.Resolution{Name: "Proof", DPI: 96}

	src := uniformGray(t, 8, 8, 100)
	out, err := quietPipeline().Enhance(src, target, custom)
	require.NoError(t, err)
	// 8 * 96/72 = 10.67 → 11.
	assert.Equal(t, 11, out.Width)
}
