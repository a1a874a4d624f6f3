// Package decode - turns image files into raw interleaved 8-bit samples.
//
// Two decoders are provided: Native, built on the Go image codecs, and OpenCV,
// built on gocv. They differ in the channel order they produce, which callers
// read from Raw.Order.
package decode

import (
	"fmt"
)

// ReadMode controls whether the decoder keeps the native channel count.
type ReadMode int

const (
	// ReadUnchanged keeps the image's native channel count (1, 3 or 4).
	ReadUnchanged ReadMode = iota
	// ReadColor forces a 3-channel color image.
	ReadColor
)

// String returns the name of the read mode.
func (m ReadMode) String() string {
	switch m {
	case ReadUnchanged:
		return "unchanged"
	case ReadColor:
		return "color"
	default:
		return fmt.Sprintf("ReadMode(%d)", int(m))
	}
}

// ChannelOrder is the order in which color samples are interleaved in Raw.Pix.
type ChannelOrder int

const (
	// OrderGray is a single luminance channel.
	OrderGray ChannelOrder = iota
	// OrderRGB is R,G,B[,A].
	OrderRGB
	// OrderBGR is B,G,R[,A] (OpenCV native order).
	OrderBGR
)

// String returns the name of the channel order.
func (o ChannelOrder) String() string {
	switch o {
	case OrderGray:
		return "gray"
	case OrderRGB:
		return "rgb"
	case OrderBGR:
		return "bgr"
	default:
		return fmt.Sprintf("ChannelOrder(%d)", int(o))
	}
}

// Raw is a decoded image as row-major interleaved 8-bit samples.
type Raw struct {
	// Width is the number of columns.
	Width int
	// Height is the number of rows.
	Height int
	// Channels is the number of samples per pixel. Zero means the decoder
	// could not map the source color model to a channel count.
	Channels int
	// Order is the interleaving order of the color samples.
	Order ChannelOrder
	// Pix holds Height*Width*Channels samples.
	Pix []uint8
}

// Stride returns the number of samples in one row.
func (r *Raw) Stride() int {
	return r.Width * r.Channels
}

// Decoder reads an image file into a Raw.
//
// Implementations open the file, consume it and release it before returning,
// on success and on failure.
type Decoder interface {
	Decode(path string, mode ReadMode) (*Raw, error)
}
