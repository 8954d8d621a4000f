package tensor

import (
	"errors"
	"math"
	"testing"
)

// flatHWC builds a uniform HWC sample slice.
func flatHWC(h, w, c int, v float32) []float32 {
	data := make([]float32, h*w*c)
	for i := range data {
		data[i] = v
	}
	return data
}

func TestNew_ChannelsLast(t *testing.T) {
	b, err := New(flatHWC(4, 6, 3, 0.5), []int{4, 6, 3}, ChannelsLast)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.Height() != 4 || b.Width() != 6 || b.Channels() != 3 {
		t.Errorf("shape: got %dx%dx%d, want 3x4x6 (CHW)", b.Channels(), b.Height(), b.Width())
	}
	if b.Layout() != ChannelsLast {
		t.Errorf("Layout: got %v, want channels-last", b.Layout())
	}
}

func TestNew_ChannelsFirst(t *testing.T) {
	b, err := New(flatHWC(4, 6, 3, 0.5), []int{3, 4, 6}, ChannelsFirst)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.Height() != 4 || b.Width() != 6 || b.Channels() != 3 {
		t.Errorf("shape: got %dx%dx%d, want 3x4x6 (CHW)", b.Channels(), b.Height(), b.Width())
	}
}

func TestNew_CanonicalOrder(t *testing.T) {
	// 1x2 image, HWC: pixel (0,0)=(0.1,0.2,0.3), pixel (1,0)=(0.4,0.5,0.6)
	data := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	b, err := New(data, []int{1, 2, 3}, ChannelsLast)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := b.At(0, 0, 1); got != 0.4 {
		t.Errorf("At(0,0,1): got %v, want 0.4", got)
	}
	if got := b.At(2, 0, 0); got != 0.3 {
		t.Errorf("At(2,0,0): got %v, want 0.3", got)
	}
}

func TestNew_AutoDetect(t *testing.T) {
	tests := []struct {
		name string
		dims []int
		want Layout
	}{
		{"trailing 3 is HWC", []int{5, 7, 3}, ChannelsLast},
		{"leading 3 is CHW", []int{3, 5, 7}, ChannelsFirst},
		{"both are 3 prefers HWC", []int{3, 5, 3}, ChannelsLast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.dims[0] * tt.dims[1] * tt.dims[2]
			b, err := New(make([]float32, n), tt.dims, Auto)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if b.Layout() != tt.want {
				t.Errorf("Layout: got %v, want %v", b.Layout(), tt.want)
			}
		})
	}
}

func TestNew_AutoDetectAmbiguous(t *testing.T) {
	_, err := New(make([]float32, 5*7*4), []int{5, 7, 4}, Auto)
	if err == nil {
		t.Fatal("New should fail when no size-3 axis exists")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error: got %v, want ErrInvalidInput", err)
	}
}

func TestNew_BatchAxis(t *testing.T) {
	b, err := New(flatHWC(4, 6, 3, 0.5), []int{1, 4, 6, 3}, ChannelsLast)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !b.Batched() {
		t.Error("Batched: got false, want true")
	}
	_, dims := b.Export()
	if len(dims) != 4 || dims[0] != 1 {
		t.Errorf("Export dims: got %v, want leading batch axis of 1", dims)
	}
}

func TestNew_InvalidShapes(t *testing.T) {
	tests := []struct {
		name string
		data []float32
		dims []int
	}{
		{"rank 2", make([]float32, 12), []int{3, 4}},
		{"rank 5", make([]float32, 72), []int{1, 1, 3, 4, 6}},
		{"batch size 2", make([]float32, 144), []int{2, 4, 6, 3}},
		{"zero dimension", nil, []int{0, 4, 3}},
		{"length mismatch", make([]float32, 10), []int{4, 6, 3}},
		{"two channels", make([]float32, 24), []int{4, 3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.data, tt.dims, ChannelsLast)
			if err == nil {
				t.Fatal("New should fail")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error: got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestNew_NonFinite(t *testing.T) {
	data := flatHWC(4, 6, 3, 0.5)
	data[20] = float32(math.NaN())
	if _, err := New(data, []int{4, 6, 3}, ChannelsLast); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NaN sample: got %v, want ErrInvalidInput", err)
	}

	data = flatHWC(4, 6, 3, 0.5)
	data[0] = float32(math.Inf(1))
	if _, err := New(data, []int{4, 6, 3}, ChannelsLast); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Inf sample: got %v, want ErrInvalidInput", err)
	}
}

func TestNew_Rescales255(t *testing.T) {
	b, err := New(flatHWC(4, 6, 3, 255), []int{4, 6, 3}, ChannelsLast)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := b.At(0, 0, 0); got != 1.0 {
		t.Errorf("rescaled sample: got %v, want 1.0", got)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	data := flatHWC(4, 6, 3, 0.5)
	b, err := New(data, []int{4, 6, 3}, ChannelsLast)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	data[0] = 0.9
	if got := b.At(0, 0, 0); got != 0.5 {
		t.Errorf("buffer aliased caller slice: got %v, want 0.5", got)
	}
}

func TestIntensity(t *testing.T) {
	data := []float32{0.0, 0.3, 0.6} // single pixel, HWC
	b, err := New(data, []int{1, 1, 3}, ChannelsLast)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got := b.Intensity(0, 0)
	want := float32(0.3)
	if diff := got - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("Intensity: got %v, want %v", got, want)
	}
}

func TestCrop(t *testing.T) {
	// 4x4 gradient so every pixel is distinct.
	data := make([]float32, 4*4*3)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			for c := 0; c < 3; c++ {
				data[(y*4+x)*3+c] = float32(y*4+x) / 16.0
			}
		}
	}
	b, err := New(data, []int{4, 4, 3}, ChannelsLast)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cropped, err := b.Crop(1, 1, 3, 3)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if cropped.Height() != 2 || cropped.Width() != 2 {
		t.Fatalf("crop size: got %dx%d, want 2x2", cropped.Width(), cropped.Height())
	}
	// (0,0) of the crop is (1,1) of the source.
	if got, want := cropped.At(0, 0, 0), b.At(0, 1, 1); got != want {
		t.Errorf("crop origin sample: got %v, want %v", got, want)
	}
	if got, want := cropped.At(0, 1, 1), b.At(0, 2, 2); got != want {
		t.Errorf("crop corner sample: got %v, want %v", got, want)
	}
}

func TestCrop_Invalid(t *testing.T) {
	b, err := New(flatHWC(4, 4, 3, 0.5), []int{4, 4, 3}, ChannelsLast)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tests := []struct {
		name                     string
		top, left, bottom, right int
	}{
		{"negative top", -1, 0, 2, 2},
		{"bottom past height", 0, 0, 5, 2},
		{"inverted rows", 3, 0, 2, 2},
		{"empty columns", 0, 2, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.Crop(tt.top, tt.left, tt.bottom, tt.right); err == nil {
				t.Error("Crop should fail")
			}
		})
	}
}

func TestExport_RoundTrip(t *testing.T) {
	for _, layout := range []Layout{ChannelsFirst, ChannelsLast} {
		t.Run(layout.String(), func(t *testing.T) {
			var dims []int
			if layout == ChannelsFirst {
				dims = []int{3, 2, 2}
			} else {
				dims = []int{2, 2, 3}
			}
			data := make([]float32, 12)
			for i := range data {
				data[i] = float32(i) / 16.0
			}
			b, err := New(data, dims, layout)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			out, outDims := b.Export()
			if len(outDims) != 3 {
				t.Fatalf("dims rank: got %d, want 3", len(outDims))
			}
			for i := range dims {
				if outDims[i] != dims[i] {
					t.Fatalf("dims: got %v, want %v", outDims, dims)
				}
			}
			for i := range data {
				if out[i] != data[i] {
					t.Fatalf("sample %d: got %v, want %v", i, out[i], data[i])
				}
			}
		})
	}
}
