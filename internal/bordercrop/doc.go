// Package bordercrop detects and removes uniform white or black margins from
// a single image.
//
// The detector makes one color decision per image: it averages a small
// top-left corner patch and targets white when the mean intensity exceeds 0.5,
// black otherwise. A pixel counts as border when its mean intensity across
// channels deviates from the target by less than the tolerance; the same
// tolerance applies symmetrically to white and black. Four independent scans
// then walk inward from the edges while entire rows or columns stay border,
// and the surviving rectangle is validated and size-checked before cropping.
//
// Results are tagged rather than signaled through sentinel rectangles: Crop
// returns Cropped with the retained rectangle, or NoBorder / TooSmall with the
// original image. Detection cost is linear in image area; the component holds
// no state and is safe for concurrent use on independent buffers.
package bordercrop
