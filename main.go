package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-pixels/config"
	"github.com/nvr-ai/go-pixels/decode"
	"github.com/nvr-ai/go-pixels/images"
	"github.com/nvr-ai/go-pixels/pixels"
	"github.com/nvr-ai/go-pixels/preprocess"
	"github.com/nvr-ai/go-pixels/report"
)

// flagKeys maps command line flags to their configuration keys.
var flagKeys = map[string]string{
	"method":   "method",
	"decoder":  "decoder",
	"samples":  "samples",
	"verbose":  "verbose",
	"preset":   "model.preset",
	"model":    "model.path",
	"onnx-lib": "model.library",
}

func main() {
	var (
		method     string
		decoder    string
		configFile string
		preset     string
		modelPath  string
		onnxLib    string
		samples    int
		verbose    bool
	)
	flag.StringVar(&method, "method", string(pixels.Direct), "Extraction method: direct, pretrained or manual")
	flag.StringVar(&decoder, "decoder", config.DecoderNative, "Image decoder: native or opencv")
	flag.StringVar(&configFile, "config", "", "Optional config file (yaml, json or toml)")
	flag.StringVar(&preset, "preset", preprocess.PresetViT, "Pretrained preprocessing preset: vit, yolov4 or dfine")
	flag.StringVar(&modelPath, "model", "", "ONNX model whose input contract the pretrained method follows")
	flag.StringVar(&onnxLib, "onnx-lib", "", "Path to the onnxruntime shared library")
	flag.IntVar(&samples, "samples", report.DefaultSamples, "Number of leading rows/columns to print")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging on stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <image>\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "Convert an image to its pixel constituents in a numeric array.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Only flags given on the command line override the config file and environment.
	overrides := map[string]interface{}{}
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.(flag.Getter).Get()
		}
	})

	if err := run(os.Stdout, flag.Args(), configFile, overrides); err != nil {
		fmt.Printf("An error occurred: %v\n", err)
	}
}

// run resolves the configuration, extracts the pixel array of the image named
// by args[0] and writes the report to w.
//
// Arguments:
//   - w: Destination of the report.
//   - args: Positional arguments; the first is the image path.
//   - configFile: Optional config file path.
//   - overrides: Configuration keys set explicitly on the command line.
//
// Returns:
//   - error: Any configuration, extraction or reporting error.
func run(w io.Writer, args []string, configFile string, overrides map[string]interface{}) error {
	if len(args) < 1 {
		return errors.New("an image path is required")
	}
	imagePath := args[0]

	v, err := config.New(configFile)
	if err != nil {
		return err
	}
	for key, value := range overrides {
		v.Set(key, value)
	}
	cfg, err := config.Parse(v)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	logger.WithFields(logrus.Fields{
		"image":   imagePath,
		"format":  images.FormatFromPath(imagePath),
		"method":  cfg.Method,
		"decoder": cfg.Decoder,
	}).Debug("starting extraction")

	method, err := pixels.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}

	newArgs := pixels.NewArgs{
		Decoder: decoderFor(cfg.Decoder),
		Logger:  logger,
	}

	if method == pixels.Pretrained {
		p, err := newPreprocessor(cfg.Model)
		if err != nil {
			return &pixels.Error{Kind: pixels.ErrDependency, Err: err}
		}
		p.SetLogger(logger)

		contract := p.Config()
		logger.WithFields(logrus.Fields{
			"preset":    cfg.Model.Preset,
			"model":     contract.Name,
			"width":     contract.InputWidth,
			"height":    contract.InputHeight,
			"letterbox": contract.KeepAspectRatio,
		}).Debug("resolved preprocessing contract")

		newArgs.Preprocessor = p
	}

	extractor, err := pixels.New(method, newArgs)
	if err != nil {
		return err
	}

	result, err := extractor.Extract(imagePath)
	if err != nil {
		return err
	}

	return report.Write(w, result, cfg.Samples)
}

// newPreprocessor builds the pretrained preprocessor from the configured
// preset, aligned with the ONNX model input when a model path is set.
func newPreprocessor(model config.ModelConfig) (*preprocess.Preprocessor, error) {
	modelConfig, err := preprocess.PresetConfig(model.Preset)
	if err != nil {
		return nil, err
	}
	if model.Path != "" {
		modelConfig, err = preprocess.LoadModelContract(model.Path, model.Library, modelConfig)
		if err != nil {
			return nil, err
		}
	}
	return preprocess.NewPreprocessor(modelConfig), nil
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func decoderFor(name string) decode.Decoder {
	if name == config.DecoderOpenCV {
		return decode.OpenCV{}
	}
	return decode.Native{}
}
