package compress

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	// WebP sources decode in process; imaging registers the rest.
	_ "golang.org/x/image/webp"
)

// ImageCompressor re-encodes image files in process: decode,
// conditionally downscale, encode per the format policy, and fall back
// to a verbatim copy when the encode failed to shrink the file.
type ImageCompressor struct {
	logger *slog.Logger
}

// NewImageCompressor creates a new image compressor.
func NewImageCompressor(logger *slog.Logger) *ImageCompressor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageCompressor{logger: logger}
}

// Compress encodes input into its policy-selected output format and
// returns the size of the file written. outputDir defaults to a
// "compressed" directory beside the input. If the encode is not
// smaller than the original, the original is copied byte-for-byte to
// the output path instead and its size reported.
func (c *ImageCompressor) Compress(input, outputDir string) (Result, error) {
	info, err := os.Stat(input)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, input)
	}
	originalSize := uint64(info.Size())

	img, err := imaging.Open(input)
	if err != nil {
		return Result{}, fmt.Errorf("%w: decode %s: %v", ErrCodec, input, err)
	}

	resized := downscale(img)

	outExt, format := imageTarget(filepath.Ext(input), isOpaque(img))

	outputFile, err := outputPath(input, outputDir, outExt)
	if err != nil {
		return Result{}, err
	}

	if err := encodeImage(outputFile, resized, format); err != nil {
		return Result{}, err
	}

	outInfo, err := os.Stat(outputFile)
	if err != nil {
		return Result{}, fmt.Errorf("stat output file: %w", err)
	}
	compressedSize := uint64(outInfo.Size())

	// Size-regression fallback: never hand back an output larger than
	// the input, even at the cost of a wasted encode.
	if compressedSize >= originalSize {
		c.logger.Debug("encode did not shrink input, keeping original",
			"input", input, "original", originalSize, "encoded", compressedSize)

		if err := copyFile(input, outputFile); err != nil {
			return Result{}, fmt.Errorf("copy original: %w", err)
		}

		finalInfo, err := os.Stat(outputFile)
		if err != nil {
			return Result{}, fmt.Errorf("stat output file: %w", err)
		}
		return Result{CompressedSize: uint64(finalInfo.Size())}, nil
	}

	return Result{CompressedSize: compressedSize}, nil
}

// downscale shrinks img so its longer side equals maxDimension,
// preserving aspect ratio. Images already within bounds are returned
// unchanged at native resolution.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension {
		return img
	}
	return imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
}

// isOpaque reports whether every pixel of img is fully opaque. Decoded
// types that cannot answer are treated as opaque.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}

// encodeImage writes img to path in the given format with the fixed
// quality parameters: JPEG at the policy quality, PNG at maximum
// compression.
func encodeImage(path string, img image.Image, format imaging.Format) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	switch format {
	case imaging.JPEG:
		err = imaging.Encode(out, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case imaging.PNG:
		err = imaging.Encode(out, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	default:
		err = imaging.Encode(out, img, format)
	}
	if err != nil {
		out.Close()
		return fmt.Errorf("%w: encode %s: %v", ErrCodec, path, err)
	}

	return out.Close()
}

// copyFile copies src over dst byte-for-byte.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
