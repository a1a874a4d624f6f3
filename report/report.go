// Package report - prints a human-readable summary of an extracted pixel array.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-pixels/pixels"
)

// DefaultSamples is the number of leading rows and columns printed.
const DefaultSamples = 5

// Summary holds the value range of an array.
type Summary struct {
	Min  float64
	Max  float64
	Mean float64
}

// Summarize computes the minimum, maximum and mean of every sample.
func Summarize(array *tensor.Dense) (Summary, error) {
	values, err := Float64s(array)
	if err != nil {
		return Summary{}, err
	}
	if len(values) == 0 {
		return Summary{}, errors.New("array is empty")
	}
	return Summary{
		Min:  floats.Min(values),
		Max:  floats.Max(values),
		Mean: stat.Mean(values, nil),
	}, nil
}

// Float64s copies the samples of a uint8 or float32 array.
func Float64s(array *tensor.Dense) ([]float64, error) {
	switch data := array.Data().(type) {
	case []uint8:
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	case []float32:
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, errors.Errorf("unsupported array dtype %v", array.Dtype())
	}
}

// FormatShape renders a shape as a tuple, e.g. "(480, 640, 3)".
func FormatShape(shape tensor.Shape) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = fmt.Sprint(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Write prints the extraction method, layout, shape, dtype, value range and a
// sample of leading pixel values.
//
// Grayscale 2D arrays print the top-left samples x samples block. Arrays with
// a channel axis print rows 0..samples-1 of column 0 with all channels.
//
// Arguments:
//   - w: The destination, usually os.Stdout.
//   - result: The extraction result.
//   - samples: How many rows (and columns) to print; values < 1 use DefaultSamples.
//
// Returns:
//   - error: An error if writing fails or the array cannot be read.
func Write(w io.Writer, result *pixels.Result, samples int) error {
	if result == nil || result.Array == nil {
		return errors.New("nothing to report")
	}
	if samples < 1 {
		samples = DefaultSamples
	}

	array := result.Array
	shape := array.Shape()

	summary, err := Summarize(array)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Extraction method: %s\n", result.Method)
	fmt.Fprintf(&b, "Image type: %s\n", result.Layout)
	fmt.Fprintf(&b, "Array shape: %s\n", FormatShape(shape))
	fmt.Fprintf(&b, "Array data type: %s\n", array.Dtype())
	if result.Method == pixels.ManualNormalized {
		fmt.Fprintf(&b, "Monochrome: %t\n", result.Monochrome)
	}
	fmt.Fprintf(&b, "Value range: min=%s max=%s mean=%.4f\n",
		formatValue(summary.Min), formatValue(summary.Max), summary.Mean)

	rows := min(samples, shape[0])

	if len(shape) == 2 {
		cols := min(samples, shape[1])
		fmt.Fprintf(&b, "\nFirst %dx%d pixel values:\n", rows, cols)
		for y := 0; y < rows; y++ {
			values := make([]string, cols)
			for x := 0; x < cols; x++ {
				v, err := array.At(y, x)
				if err != nil {
					return errors.Wrapf(err, "reading sample (%d, %d)", y, x)
				}
				values[x] = fmt.Sprint(v)
			}
			fmt.Fprintf(&b, "[%s]\n", strings.Join(values, " "))
		}
	} else {
		channels := shape[2]
		fmt.Fprintf(&b, "\nFirst %d pixel values (%s):\n", rows, channelNames(channels))
		for y := 0; y < rows; y++ {
			values := make([]string, channels)
			for c := 0; c < channels; c++ {
				v, err := array.At(y, 0, c)
				if err != nil {
					return errors.Wrapf(err, "reading sample (%d, 0, %d)", y, c)
				}
				values[c] = fmt.Sprint(v)
			}
			fmt.Fprintf(&b, "[%s]\n", strings.Join(values, " "))
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func channelNames(channels int) string {
	switch channels {
	case 1:
		return "gray"
	case 4:
		return "RGBA"
	default:
		return "RGB"
	}
}

// formatValue prints integral values without a fraction.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.4f", v)
}
