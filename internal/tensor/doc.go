// Package tensor provides the dense float32 pixel buffer the border-crop
// pipeline operates on.
//
// A Buffer is a 3-D array of samples, logically channels x height x width,
// stored in canonical channel-first order regardless of the layout the caller
// supplied. Callers describe their layout explicitly (ChannelsFirst or
// ChannelsLast) or let Auto infer it from a size-3 channel axis. A leading
// size-1 batch axis is accepted and squeezed; Export re-adds it.
//
// # Value Range
//
// Samples are kept in [0, 1]. Inputs whose maximum exceeds 1.0 are treated as
// 8-bit values and rescaled by 1/255 during construction. Non-finite samples
// are rejected with ErrInvalidInput.
//
// # Ownership
//
// Construction copies the caller's slice, Crop and Export allocate fresh
// slices, and nothing ever mutates caller-owned memory. Buffers are therefore
// safe to use concurrently across independent calls.
package tensor
