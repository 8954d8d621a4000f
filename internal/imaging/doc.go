// Package imaging bridges standard Go image.Image values and the border-crop
// pipeline for the MCP server.
//
// It provides image loading with caching, conversion between image.Image and
// the float pixel buffers the detector operates on, a manual region crop, and
// the AutoCrop / DetectBorder operations that run the full border-removal
// pipeline. Cropped pixels are returned as base64-encoded PNG.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with origin at the top-left corner, X
// increasing rightward and Y downward. Region corners follow the usual
// convention: top-left inclusive, bottom-right exclusive.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining operations are
// stateless and can run concurrently on independent images.
//
// # Error Handling
//
// Functions return errors for out-of-bounds or inverted regions, file I/O and
// decode failures, and PNG encoding failures. Border detection outcomes that
// leave the image unchanged (no border, crop below the minimum size) are
// reported through the result's outcome tag, not as errors.
package imaging
