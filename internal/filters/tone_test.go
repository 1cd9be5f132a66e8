package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustToneBrightnessThenContrast(t *testing.T) {
	// 200 * 1.2 = 240, then contrast 1.0 is a no-op → 240.
	buf := uniform(t, 2, 2, 200)
	AdjustTone(buf, 1.2, 1.0)
	assert.EqualValues(t, 240, buf.Pix[0])
}

func TestAdjustToneOrderIsLoadBearing(t *testing.T) {
	// brightness 1.2 then contrast 0.5 on 200:
	//   240 → ((240/255-0.5)*0.5+0.5)*255 = 183.75 → 184.
	// The reversed order would give ((200/255-0.5)*0.5+0.5)*255 = 163.75,
	// then *1.2 = 196.5, so asserting 184 pins the implemented sequencing.
	buf := uniform(t, 2, 2, 200)
	AdjustTone(buf, 1.2, 0.5)
	assert.EqualValues(t, 184, buf.Pix[0])
}

func TestAdjustToneClampsBetweenSteps(t *testing.T) {
	// 240 * 2.0 = 480 clamps to 255 before contrast sees it:
	//   ((255/255-0.5)*0.5+0.5)*255 = 191.25 → 191.
	// Without the intermediate clamp, contrast would read 480 and produce
	// ((480/255-0.5)*0.5+0.5)*255 = 303.75 → clamp 255.
	buf := uniform(t, 2, 2, 240)
	AdjustTone(buf, 2.0, 0.5)
	assert.EqualValues(t, 191, buf.Pix[0])
}

func TestAdjustToneAppliesFullFrameIncludingBorders(t *testing.T) {
	buf := uniform(t, 5, 5, 100)
	AdjustTone(buf, 1.5, 1.0)
	for i := 0; i < len(buf.Pix); i += 4 {
		assert.EqualValues(t, 150, buf.Pix[i])
		assert.EqualValues(t, 150, buf.Pix[i+1])
		assert.EqualValues(t, 150, buf.Pix[i+2])
		assert.EqualValues(t, 255, buf.Pix[i+3])
	}
}

func TestAdjustToneContrastExpandsAroundMidpoint(t *testing.T) {
	// Contrast 2.0 maps every byte to n.5, a rounding tie that float noise
	// can land on either side of, so the dark case uses contrast 1.5:
	// ((64/255-0.5)*1.5+0.5)*255 = 1.5*64 - 63.75 = 32.25, which rounds
	// to 32 with a quarter of margin.
	buf := uniform(t, 2, 2, 64)
	AdjustTone(buf, 1.0, 1.5)
	assert.EqualValues(t, 32, buf.Pix[0])

	// The bright case keeps contrast 2.0: 2*192 - 127.5 = 256.5 clamps to
	// 255, and the clamp absorbs any noise around the tie.
	buf = uniform(t, 2, 2, 192)
	AdjustTone(buf, 1.0, 2.0)
	assert.EqualValues(t, 255, buf.Pix[0])
}
