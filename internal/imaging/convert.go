package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/border-crop-mcp/internal/tensor"
)

// FromImage converts an image.Image into a channel-last pixel buffer with
// values in [0, 1]. Alpha is dropped; the detector only reasons about color
// intensity.
func FromImage(img image.Image) (*tensor.Buffer, error) {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()

	data := make([]float32, h*w*3)
	i := 0
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			data[i] = float32(row[x*4]) / 255.0
			data[i+1] = float32(row[x*4+1]) / 255.0
			data[i+2] = float32(row[x*4+2]) / 255.0
			i += 3
		}
	}
	return tensor.New(data, []int{h, w, 3}, tensor.ChannelsLast)
}

// ToImage converts a pixel buffer back to an 8-bit NRGBA image. Samples are
// clamped to [0, 1] before quantization; single-channel buffers expand to
// gray RGB.
func ToImage(buf *tensor.Buffer) *image.NRGBA {
	h, w := buf.Height(), buf.Width()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := out.PixOffset(x, y)
			if buf.Channels() == 1 {
				v := quantize(buf.At(0, y, x))
				out.Pix[o] = v
				out.Pix[o+1] = v
				out.Pix[o+2] = v
			} else {
				out.Pix[o] = quantize(buf.At(0, y, x))
				out.Pix[o+1] = quantize(buf.At(1, y, x))
				out.Pix[o+2] = quantize(buf.At(2, y, x))
			}
			out.Pix[o+3] = 0xff
		}
	}
	return out
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
