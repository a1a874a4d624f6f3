package images

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ImageFormat represents supported image formats
type ImageFormat string

const (
	FormatJPEG    ImageFormat = "jpeg"
	FormatPNG     ImageFormat = "png"
	FormatWebP    ImageFormat = "webp"
	FormatBMP     ImageFormat = "bmp"
	FormatGIF     ImageFormat = "gif"
	FormatTIFF    ImageFormat = "tiff"
	FormatUnknown ImageFormat = "unknown"
)

// extensions maps lower-cased file extensions to their image format.
var extensions = map[string]ImageFormat{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".webp": FormatWebP,
	".bmp":  FormatBMP,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// FormatFromPath guesses the image format from the file extension.
//
// Arguments:
// - path: The path to the image file.
//
// Returns:
// - The matching ImageFormat, or FormatUnknown when the extension is not recognized.
//
// @example
// format := FormatFromPath("frames/frame-0001.JPG") // FormatJPEG
func FormatFromPath(path string) ImageFormat {
	if format, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return format
	}
	return FormatUnknown
}

// ValidateFile checks that the path exists and is a non-empty regular file.
//
// The extension is not enforced; decoders sniff the content.
//
// Arguments:
// - path: The path to the image file.
//
// Returns:
// - error: An error if the file is missing, unreadable, a directory or empty.
func ValidateFile(path string) error {
	if path == "" {
		return errors.New("no image path given")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.Errorf("file not found: %s", path)
	}
	if err != nil {
		return errors.Wrapf(err, "cannot stat %s", path)
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return errors.Errorf("%s is empty", path)
	}

	return nil
}
