package pixels

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-pixels/decode"
	"github.com/nvr-ai/go-pixels/preprocess"
)

// writePNG encodes img as dir/name and returns the path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// solidRGB returns an opaque w x h image filled with c.
func solidRGB(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// touch creates a placeholder file so path validation passes for stub decoders.
func touch(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stub.img")
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o644))
	return path
}

// stubDecoder returns a copy of a fixed Raw, or err.
type stubDecoder struct {
	raw *decode.Raw
	err error
}

func (d stubDecoder) Decode(path string, mode decode.ReadMode) (*decode.Raw, error) {
	if d.err != nil {
		return nil, d.err
	}
	raw := *d.raw
	raw.Pix = append([]uint8(nil), d.raw.Pix...)
	return &raw, nil
}

// stubPreprocessor returns a fixed result, or err.
type stubPreprocessor struct {
	result *preprocess.PreprocessingResult
	err    error
}

func (p stubPreprocessor) Preprocess(img image.Image) (*preprocess.PreprocessingResult, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

var errStub = errors.New("model weights unavailable")

// at reads a single element from the array.
func at(t *testing.T, array *tensor.Dense, coords ...int) interface{} {
	t.Helper()
	v, err := array.At(coords...)
	require.NoError(t, err)
	return v
}

func shape(array *tensor.Dense) []int {
	return []int(array.Shape().Clone())
}
