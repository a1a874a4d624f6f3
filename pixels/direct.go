package pixels

import (
	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-pixels/decode"
)

// directExtractor returns the native samples with the channel order corrected.
type directExtractor struct {
	decoder decode.Decoder
	logger  logrus.FieldLogger
}

func (e *directExtractor) Method() Method {
	return Direct
}

// Extract decodes path without forcing a conversion and maps its channel
// count to a layout: 1 -> grayscale (H, W), 3 -> color (H, W, 3),
// 4 -> color with alpha (H, W, 4).
func (e *directExtractor) Extract(path string) (*Result, error) {
	raw, err := read(e.decoder, path, decode.ReadUnchanged)
	if err != nil {
		return nil, err
	}

	layout, err := LayoutFor(raw.Channels)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"path":     path,
		"channels": raw.Channels,
		"order":    raw.Order,
	}).Debug("decoded image")

	toRGB(raw)

	return &Result{
		Method: Direct,
		Layout: layout,
		Array:  rawArray(raw),
	}, nil
}
