package pixels

import (
	"github.com/nvr-ai/go-pixels/decode"
)

// IsMonochrome reports whether every pixel of the image at path has equal red,
// green and blue components. There is no tolerance: a single pixel off by one
// makes the image non-monochrome.
//
// Arguments:
//   - path: The image file to inspect.
//   - decoder: The decoder to read it with; nil uses decode.Native.
//
// Returns:
//   - bool: True only if r == g == b for every pixel.
//   - error: ErrRead if the image cannot be read.
func IsMonochrome(path string, decoder decode.Decoder) (bool, error) {
	if decoder == nil {
		decoder = decode.Native{}
	}

	raw, err := read(decoder, path, decode.ReadColor)
	if err != nil {
		return false, err
	}
	if raw.Channels != 3 {
		return false, kindError(ErrUnsupportedFormat, nil, "color read of %s returned %d channels", path, raw.Channels)
	}

	return monochrome(raw), nil
}

// monochrome scans 3-channel samples in row-major order and stops at the first
// pixel whose components differ. Channel order does not matter.
func monochrome(raw *decode.Raw) bool {
	pix := raw.Pix
	for i := 0; i+2 < len(pix); i += 3 {
		if pix[i] != pix[i+1] || pix[i+1] != pix[i+2] {
			return false
		}
	}
	return true
}
