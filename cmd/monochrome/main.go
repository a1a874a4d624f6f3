// Command monochrome reports whether every pixel of an image has equal red,
// green and blue components.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-pixels/config"
	"github.com/nvr-ai/go-pixels/decode"
	"github.com/nvr-ai/go-pixels/pixels"
)

func main() {
	decoderName := flag.String("decoder", config.DecoderNative, "Image decoder: native or opencv")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <image>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	mono, err := check(flag.Args(), *decoderName)
	if err != nil {
		fmt.Printf("An error occurred: %v\n", err)
		return
	}
	fmt.Printf("Monochrome: %t\n", mono)
}

func check(args []string, decoderName string) (bool, error) {
	if len(args) < 1 {
		return false, errors.New("an image path is required")
	}

	var decoder decode.Decoder
	switch decoderName {
	case config.DecoderNative:
		decoder = decode.Native{}
	case config.DecoderOpenCV:
		decoder = decode.OpenCV{}
	default:
		return false, errors.Errorf("unknown decoder %q", decoderName)
	}

	return pixels.IsMonochrome(args[0], decoder)
}
