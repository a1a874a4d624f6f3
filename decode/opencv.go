package decode

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// depthMask extracts the depth bits of an OpenCV Mat type.
const depthMask gocv.MatType = 7

// OpenCV decodes with gocv. Color samples are produced in OpenCV's native
// B,G,R[,A] order.
type OpenCV struct{}

// Decode implements Decoder.
//
// Arguments:
//   - path: The image file to decode.
//   - mode: ReadUnchanged maps to gocv.IMReadUnchanged, ReadColor to gocv.IMReadColor.
//
// Returns:
//   - *Raw: The decoded samples, 16-bit images scaled down to 8-bit.
//   - error: An error if OpenCV cannot read the file.
func (OpenCV) Decode(path string, mode ReadMode) (*Raw, error) {
	flags := gocv.IMReadUnchanged
	if mode == ReadColor {
		flags = gocv.IMReadColor
	}

	mat := gocv.IMRead(path, flags)
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.Errorf("unable to read image %s", path)
	}

	// IMReadUnchanged keeps 16-bit depth for PNG/TIFF.
	if mat.Type()&depthMask == gocv.MatTypeCV16U {
		scaled := gocv.NewMat()
		defer scaled.Close()
		if err := mat.ConvertToWithParams(&scaled, gocv.MatTypeCV8U, 1.0/256.0, 0); err != nil {
			return nil, errors.Wrapf(err, "unable to convert %s to 8-bit", path)
		}
		return fromMat(scaled), nil
	}

	return fromMat(mat), nil
}

// fromMat copies the Mat samples into a Raw.
func fromMat(mat gocv.Mat) *Raw {
	raw := &Raw{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Order:    OrderBGR,
		Pix:      mat.ToBytes(),
	}
	if raw.Channels == 1 {
		raw.Order = OrderGray
	}
	return raw
}
