package bordercrop

import (
	"fmt"
	"log"

	"github.com/ironsheep/border-crop-mcp/internal/tensor"
)

// Default parameter values. Tolerance follows the "maximum allowed absolute
// deviation from the target color" convention, applied symmetrically to white
// and black borders.
const (
	DefaultTolerance  = 0.02
	MinTolerance      = 0.01
	MaxTolerance      = 0.5
	DefaultMinSize    = 10
	DefaultCornerSize = 10
)

// Options control a single detection run.
type Options struct {
	// Tolerance is the maximum absolute deviation of a pixel's mean intensity
	// from the target color (0.0 or 1.0) for the pixel to count as border.
	// Values outside [MinTolerance, MaxTolerance] are clamped.
	Tolerance float32

	// MinSize is the smallest crop height or width the detector will accept.
	// Crops below the floor are discarded and the original image returned.
	// Zero selects DefaultMinSize.
	MinSize int

	// CornerSize is the side length of the top-left patch sampled to decide
	// whether the border is white or black. Zero selects DefaultCornerSize.
	CornerSize int

	// Lenient degrades unexpected detection failures to "return the original
	// image" instead of propagating an error. Input validation failures
	// propagate regardless.
	Lenient bool
}

func (o Options) normalized() Options {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Tolerance < MinTolerance {
		o.Tolerance = MinTolerance
	}
	if o.Tolerance > MaxTolerance {
		o.Tolerance = MaxTolerance
	}
	if o.MinSize <= 0 {
		o.MinSize = DefaultMinSize
	}
	if o.CornerSize <= 0 {
		o.CornerSize = DefaultCornerSize
	}
	return o
}

// Rect is a half-open crop rectangle: rows [Top, Bottom), columns
// [Left, Right). Invariant: 0 <= Top < Bottom <= height and
// 0 <= Left < Right <= width.
type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Width returns Right - Left.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Outcome tags the result of a crop attempt. Only Cropped means pixels were
// removed; the other outcomes return the input unchanged and are normal,
// expected results rather than errors.
type Outcome int

const (
	// Cropped means a border was found and stripped.
	Cropped Outcome = iota

	// NoBorder means no valid border rectangle was detected: either no edge
	// row or column matched the target color, or validation rejected the
	// candidate rectangle.
	NoBorder

	// TooSmall means a border was detected but the remaining interior fell
	// below the minimum-size floor, so the crop was discarded.
	TooSmall
)

// String returns the outcome tag used in tool results.
func (o Outcome) String() string {
	switch o {
	case Cropped:
		return "cropped"
	case NoBorder:
		return "no_border"
	case TooSmall:
		return "too_small"
	default:
		return "unknown"
	}
}

// Detection describes what the detector decided about the border color.
type Detection struct {
	// Target is the border color the scans matched against: 1.0 for white,
	// 0.0 for black.
	Target float32

	// CornerMean is the mean intensity of the sampled corner patch that drove
	// the target decision.
	CornerMean float32
}

// White reports whether the detected border color is white.
func (d Detection) White() bool { return d.Target > 0.5 }

// Result is the outcome of Crop. Image is the cropped buffer when Outcome is
// Cropped, otherwise the original buffer. Rect is only meaningful for the
// Cropped outcome.
type Result struct {
	Image     *tensor.Buffer
	Rect      Rect
	Outcome   Outcome
	Detection Detection
}

// Detect scans img for a uniform white or black border and returns the
// retained rectangle. The bool result reports whether a valid, non-trivial
// rectangle was found; when false the rectangle spans the full image.
//
// The border color is decided once per image from the mean intensity of the
// top-left corner patch: above 0.5 the scans look for white, otherwise black.
// Each edge scan walks inward while the entire row or column stays within
// tolerance of the target; a scan that would consume its whole axis resets to
// the unclipped extreme, treating that edge as borderless.
func Detect(img *tensor.Buffer, opts Options) (Rect, Detection, bool) {
	opts = opts.normalized()
	h, w := img.Height(), img.Width()
	det := sampleCorner(img, opts.CornerSize)
	tol := opts.Tolerance

	top := 0
	for top < h && rowIsBorder(img, top, tol, det.Target) {
		top++
		if top >= h-1 {
			top = 0
			break
		}
	}

	// bottom and right track the last content index inclusively; the
	// published rectangle is half-open.
	bottom := h - 1
	for bottom > top && rowIsBorder(img, bottom, tol, det.Target) {
		bottom--
		if bottom <= top {
			bottom = h - 1
			break
		}
	}

	left := 0
	for left < w && colIsBorder(img, left, tol, det.Target) {
		left++
		if left >= w-1 {
			left = 0
			break
		}
	}

	right := w - 1
	for right > left && colIsBorder(img, right, tol, det.Target) {
		right--
		if right <= left {
			right = w - 1
			break
		}
	}

	rect := Rect{Top: top, Left: left, Bottom: bottom + 1, Right: right + 1}
	full := Rect{Top: 0, Left: 0, Bottom: h, Right: w}

	if rect.Top >= rect.Bottom || rect.Left >= rect.Right ||
		rect.Top < 0 || rect.Bottom > h || rect.Left < 0 || rect.Right > w ||
		rect == full {
		return full, det, false
	}
	return rect, det, true
}

// Crop detects and removes the uniform border of img, returning a tagged
// Result. The returned buffer is always a fresh copy; img is never mutated.
//
// Malformed input (nil buffer) fails with tensor.ErrInvalidInput in both
// policies. Unexpected internal failures propagate as errors unless
// opts.Lenient is set, in which case the original image is returned and the
// cause logged.
func Crop(img *tensor.Buffer, opts Options) (res *Result, err error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil buffer", tensor.ErrInvalidInput)
	}
	opts = opts.normalized()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if opts.Lenient {
			log.Printf("border crop failed, returning original image: %v", r)
			res = &Result{Image: img, Rect: fullRect(img), Outcome: NoBorder}
			err = nil
			return
		}
		res = nil
		err = fmt.Errorf("border crop failed: %v", r)
	}()

	rect, det, ok := Detect(img, opts)
	if !ok {
		return &Result{Image: img, Rect: rect, Outcome: NoBorder, Detection: det}, nil
	}

	if rect.Height() < opts.MinSize || rect.Width() < opts.MinSize {
		return &Result{Image: img, Rect: fullRect(img), Outcome: TooSmall, Detection: det}, nil
	}

	cropped, cerr := img.Crop(rect.Top, rect.Left, rect.Bottom, rect.Right)
	if cerr != nil {
		// Detect already validated the rectangle, so this is unexpected.
		if opts.Lenient {
			log.Printf("border crop failed, returning original image: %v", cerr)
			return &Result{Image: img, Rect: fullRect(img), Outcome: NoBorder, Detection: det}, nil
		}
		return nil, fmt.Errorf("border crop failed: %w", cerr)
	}

	return &Result{Image: cropped, Rect: rect, Outcome: Cropped, Detection: det}, nil
}

// sampleCorner averages the top-left patch, clamped to the image extent, and
// picks the border target color from it.
func sampleCorner(img *tensor.Buffer, size int) Detection {
	ph, pw := size, size
	if ph > img.Height() {
		ph = img.Height()
	}
	if pw > img.Width() {
		pw = img.Width()
	}
	var sum float64
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			sum += float64(img.Intensity(y, x))
		}
	}
	mean := float32(sum / float64(ph*pw))
	target := float32(0)
	if mean > 0.5 {
		target = 1
	}
	return Detection{Target: target, CornerMean: mean}
}

func rowIsBorder(img *tensor.Buffer, y int, tol, target float32) bool {
	for x := 0; x < img.Width(); x++ {
		if !within(img.Intensity(y, x), target, tol) {
			return false
		}
	}
	return true
}

func colIsBorder(img *tensor.Buffer, x int, tol, target float32) bool {
	for y := 0; y < img.Height(); y++ {
		if !within(img.Intensity(y, x), target, tol) {
			return false
		}
	}
	return true
}

func within(v, target, tol float32) bool {
	d := v - target
	if d < 0 {
		d = -d
	}
	return d < tol
}

func fullRect(img *tensor.Buffer) Rect {
	return Rect{Top: 0, Left: 0, Bottom: img.Height(), Right: img.Width()}
}
