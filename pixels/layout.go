package pixels

import (
	"github.com/pkg/errors"
)

// Layout identifies the channel arrangement of a pixel array.
type Layout string

const (
	// Grayscale is a single luminance channel.
	Grayscale Layout = "grayscale"
	// Color is R,G,B.
	Color Layout = "color"
	// ColorAlpha is R,G,B,A.
	ColorAlpha Layout = "color with alpha"
)

// LayoutFor maps a native channel count to its layout.
//
// Arguments:
//   - channels: The number of samples per pixel reported by the decoder.
//
// Returns:
//   - Layout: The matching layout tag.
//   - error: ErrUnsupportedFormat for counts other than 1, 3 and 4.
func LayoutFor(channels int) (Layout, error) {
	switch channels {
	case 1:
		return Grayscale, nil
	case 3:
		return Color, nil
	case 4:
		return ColorAlpha, nil
	default:
		return "", kindError(ErrUnsupportedFormat, nil, "image has %d channels", channels)
	}
}

// Channels returns the number of samples per pixel for the layout.
func (l Layout) Channels() int {
	switch l {
	case Grayscale:
		return 1
	case Color:
		return 3
	case ColorAlpha:
		return 4
	default:
		return 0
	}
}

// Method selects the extraction strategy.
type Method string

const (
	// Direct decodes native pixel bytes and corrects the channel order.
	Direct Method = "direct"
	// Pretrained delegates to a fixed-contract model preprocessor.
	Pretrained Method = "pretrained"
	// ManualNormalized forces RGB, detects monochrome images and scales samples to [0, 1].
	ManualNormalized Method = "manual"
)

// Methods lists every supported extraction method.
var Methods = []Method{Direct, Pretrained, ManualNormalized}

// ParseMethod returns the Method named by s.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.Errorf("unknown extraction method %q (want one of %v)", s, Methods)
}
