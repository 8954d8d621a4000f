package tensor

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks malformed pixel buffers: unsupported rank, shape or
// layout mismatch, empty data, or non-finite samples. Callers should treat it
// as a pipeline wiring bug, not as a recoverable detection outcome.
var ErrInvalidInput = errors.New("invalid image buffer")

// Layout describes how the caller's flat sample slice is organized.
type Layout int

const (
	// Auto infers the layout from the shape. It requires a size-3 channel
	// axis and prefers ChannelsLast when both axes could be channels.
	Auto Layout = iota

	// ChannelsFirst is (C, H, W) ordering.
	ChannelsFirst

	// ChannelsLast is (H, W, C) ordering.
	ChannelsLast
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case ChannelsFirst:
		return "channels-first"
	case ChannelsLast:
		return "channels-last"
	default:
		return "auto"
	}
}

// Buffer is a dense 3-D float32 pixel buffer. Samples are stored in canonical
// channel-first (C, H, W) order with values in [0, 1]; the layout and batch
// axis the caller supplied are remembered so exported data matches the input
// form. A Buffer never aliases caller memory: construction copies, Crop copies.
type Buffer struct {
	data    []float32
	c, h, w int

	srcLayout Layout // resolved ChannelsFirst or ChannelsLast
	batched   bool   // input carried a leading size-1 batch axis
}

// New builds a Buffer from a flat sample slice and its shape. dims must have
// rank 3, or rank 4 with a leading batch axis of size 1 (the batch axis is
// squeezed and restored by Export). layout may be Auto, ChannelsFirst, or
// ChannelsLast; Auto requires a size-3 channel axis.
//
// Samples whose maximum exceeds 1.0 are assumed to be 8-bit values and are
// rescaled by 1/255. Non-finite samples are rejected.
func New(data []float32, dims []int, layout Layout) (*Buffer, error) {
	batched := false
	if len(dims) == 4 {
		if dims[0] != 1 {
			return nil, fmt.Errorf("%w: batch axis must have size 1, got %d", ErrInvalidInput, dims[0])
		}
		dims = dims[1:]
		batched = true
	}
	if len(dims) != 3 {
		return nil, fmt.Errorf("%w: want rank 3 or 4, got rank %d", ErrInvalidInput, len(dims))
	}
	for _, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("%w: non-positive dimension in shape %v", ErrInvalidInput, dims)
		}
	}

	resolved, err := resolveLayout(dims, layout)
	if err != nil {
		return nil, err
	}

	var c, h, w int
	if resolved == ChannelsFirst {
		c, h, w = dims[0], dims[1], dims[2]
	} else {
		h, w, c = dims[0], dims[1], dims[2]
	}
	if c != 1 && c != 3 {
		return nil, fmt.Errorf("%w: want 1 or 3 channels, got %d", ErrInvalidInput, c)
	}
	if len(data) != c*h*w {
		return nil, fmt.Errorf("%w: %d samples do not fill shape %v", ErrInvalidInput, len(data), dims)
	}

	b := &Buffer{
		data:      make([]float32, len(data)),
		c:         c,
		h:         h,
		w:         w,
		srcLayout: resolved,
		batched:   batched,
	}

	// Copy into canonical CHW order, checking finiteness and the value range
	// in the same pass.
	maxVal := float32(0)
	if resolved == ChannelsFirst {
		for i, v := range data {
			if !finite(v) {
				return nil, fmt.Errorf("%w: non-finite sample at index %d", ErrInvalidInput, i)
			}
			b.data[i] = v
			if v > maxVal {
				maxVal = v
			}
		}
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				for ch := 0; ch < c; ch++ {
					v := data[(y*w+x)*c+ch]
					if !finite(v) {
						return nil, fmt.Errorf("%w: non-finite sample at (%d,%d) channel %d", ErrInvalidInput, x, y, ch)
					}
					b.data[ch*h*w+y*w+x] = v
					if v > maxVal {
						maxVal = v
					}
				}
			}
		}
	}

	if maxVal > 1.0 {
		for i := range b.data {
			b.data[i] /= 255.0
		}
	}

	return b, nil
}

func resolveLayout(dims []int, layout Layout) (Layout, error) {
	switch layout {
	case ChannelsFirst, ChannelsLast:
		return layout, nil
	case Auto:
		// Trailing size-3 axis wins, matching the common HWC convention.
		if dims[2] == 3 {
			return ChannelsLast, nil
		}
		if dims[0] == 3 {
			return ChannelsFirst, nil
		}
		return 0, fmt.Errorf("%w: cannot infer layout from shape %v, pass an explicit layout", ErrInvalidInput, dims)
	default:
		return 0, fmt.Errorf("%w: unknown layout %d", ErrInvalidInput, int(layout))
	}
}

// Channels returns the channel count (1 or 3).
func (b *Buffer) Channels() int { return b.c }

// Height returns the pixel row count.
func (b *Buffer) Height() int { return b.h }

// Width returns the pixel column count.
func (b *Buffer) Width() int { return b.w }

// Layout returns the resolved input layout (ChannelsFirst or ChannelsLast).
func (b *Buffer) Layout() Layout { return b.srcLayout }

// Batched reports whether the input carried a leading size-1 batch axis.
func (b *Buffer) Batched() bool { return b.batched }

// At returns the sample for channel ch at pixel (x, y). Bounds are the
// caller's responsibility.
func (b *Buffer) At(ch, y, x int) float32 {
	return b.data[ch*b.h*b.w+y*b.w+x]
}

// Intensity returns the mean across channels at pixel (x, y).
func (b *Buffer) Intensity(y, x int) float32 {
	var sum float32
	for ch := 0; ch < b.c; ch++ {
		sum += b.data[ch*b.h*b.w+y*b.w+x]
	}
	return sum / float32(b.c)
}

// Crop returns a new Buffer holding rows [top, bottom) and columns
// [left, right). The source is never mutated; layout and batch metadata carry
// over so Export produces the same form as the original input.
func (b *Buffer) Crop(top, left, bottom, right int) (*Buffer, error) {
	if top < 0 || left < 0 || bottom > b.h || right > b.w || top >= bottom || left >= right {
		return nil, fmt.Errorf("%w: crop [%d:%d, %d:%d] outside %dx%d image",
			ErrInvalidInput, top, bottom, left, right, b.w, b.h)
	}
	ch, cw := bottom-top, right-left
	out := &Buffer{
		data:      make([]float32, b.c*ch*cw),
		c:         b.c,
		h:         ch,
		w:         cw,
		srcLayout: b.srcLayout,
		batched:   b.batched,
	}
	for c := 0; c < b.c; c++ {
		for y := 0; y < ch; y++ {
			srcRow := b.data[c*b.h*b.w+(top+y)*b.w+left : c*b.h*b.w+(top+y)*b.w+right]
			dstRow := out.data[c*ch*cw+y*cw : c*ch*cw+(y+1)*cw]
			copy(dstRow, srcRow)
		}
	}
	return out, nil
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := *b
	out.data = make([]float32, len(b.data))
	copy(out.data, b.data)
	return &out
}

// Export returns the samples in the original input layout together with the
// shape, re-adding the batch axis if the input had one. The returned slice is
// freshly allocated.
func (b *Buffer) Export() ([]float32, []int) {
	var data []float32
	var dims []int
	if b.srcLayout == ChannelsFirst {
		data = make([]float32, len(b.data))
		copy(data, b.data)
		dims = []int{b.c, b.h, b.w}
	} else {
		data = make([]float32, len(b.data))
		for y := 0; y < b.h; y++ {
			for x := 0; x < b.w; x++ {
				for ch := 0; ch < b.c; ch++ {
					data[(y*b.w+x)*b.c+ch] = b.data[ch*b.h*b.w+y*b.w+x]
				}
			}
		}
		dims = []int{b.h, b.w, b.c}
	}
	if b.batched {
		dims = append([]int{1}, dims...)
	}
	return data, dims
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
