// Package images - shared image helpers for the pixel extractors.
package images

import (
	"image"
)

// Size is the width and height of an image in pixels.
type Size struct {
	// The width of the image.
	Width int `json:"width" yaml:"width"`
	// The height of the image.
	Height int `json:"height" yaml:"height"`
}

// SizeOf returns the dimensions of img.
func SizeOf(img image.Image) Size {
	b := img.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// Empty reports whether the size has no pixels.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Pixels returns the number of pixels covered by the size.
func (s Size) Pixels() int {
	if s.Empty() {
		return 0
	}
	return s.Width * s.Height
}
