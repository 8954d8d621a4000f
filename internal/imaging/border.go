package imaging

import (
	"fmt"
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/border-crop-mcp/internal/bordercrop"
)

// BorderInfo describes a detected border without carrying pixel data.
type BorderInfo struct {
	// Outcome is "cropped", "no_border", or "too_small".
	Outcome string `json:"outcome"`

	// Rect is the retained region; for non-cropped outcomes it spans the
	// full image.
	Rect bordercrop.Rect `json:"rect"`

	// BorderColor is the target color the scans matched, as a hex string
	// ("#ffffff" or "#000000").
	BorderColor string `json:"border_color"`

	// CornerMean is the corner-patch intensity that drove the color decision.
	CornerMean float64 `json:"corner_mean"`
}

// AutoCropResult contains the border-cropped image plus the detection detail.
type AutoCropResult struct {
	BorderInfo
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// DetectBorder runs border detection on img and reports the crop rectangle
// and border color without producing pixels. Useful for hosts that want the
// geometry only.
func DetectBorder(img image.Image, opts bordercrop.Options) (*BorderInfo, error) {
	buf, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	res, err := bordercrop.Crop(buf, opts)
	if err != nil {
		return nil, err
	}
	info := borderInfo(res)
	return &info, nil
}

// AutoCrop detects and removes the uniform white or black border of img,
// returning the cropped pixels as base64 PNG. Non-cropped outcomes return the
// original image with the outcome tag set.
func AutoCrop(img image.Image, opts bordercrop.Options) (*AutoCropResult, error) {
	buf, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	res, err := bordercrop.Crop(buf, opts)
	if err != nil {
		return nil, err
	}

	out := ToImage(res.Image)
	encoded, err := encodePNG(out)
	if err != nil {
		return nil, err
	}

	return &AutoCropResult{
		BorderInfo:  borderInfo(res),
		Width:       res.Image.Width(),
		Height:      res.Image.Height(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

func borderInfo(res *bordercrop.Result) BorderInfo {
	t := float64(res.Detection.Target)
	c := colorful.Color{R: t, G: t, B: t}
	return BorderInfo{
		Outcome:     res.Outcome.String(),
		Rect:        res.Rect,
		BorderColor: c.Hex(),
		CornerMean:  float64(res.Detection.CornerMean),
	}
}
