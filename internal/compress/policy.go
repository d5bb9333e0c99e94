package compress

import (
	"strings"

	"github.com/disintegration/imaging"
)

// Fixed encoding policy. None of these are user-configurable: the
// pipeline trades a little quality for a predictable size reduction.
const (
	// videoCodec re-encodes the video stream at constant quality.
	videoCodec = "libx265"
	// videoCRF is the constant-quality setting, tuned for a balanced
	// size/quality trade-off.
	videoCRF = "28"
	// videoPreset is the encoding-speed preset.
	videoPreset = "medium"
	// audioCodec re-encodes audio at a fixed bitrate.
	audioCodec   = "aac"
	audioBitrate = "128k"

	// maxDimension is the longest image side kept at native resolution.
	// Larger images are downscaled so the longer side equals this.
	maxDimension = 2048
	// jpegQuality balances visual quality against size on the lossy path.
	jpegQuality = 85

	// outputSubdir is the default output directory created beside the input.
	outputSubdir = "compressed"
	// outputSuffix is appended to the input stem in the output filename.
	outputSuffix = "_compressed"
)

// Result is the single outcome value of a compression operation.
type Result struct {
	// CompressedSize is the byte count of the file written to the
	// output path, measured from disk.
	CompressedSize uint64
}

// imageTarget selects the output extension and encoder for an input
// extension. Already-efficient lossy formats are redirected to JPEG.
// PNG stays PNG only when the decoded pixels actually use transparency;
// an opaque PNG compresses better as JPEG. GIF is kept as-is because it
// may be animated. Everything unknown defaults to JPEG.
func imageTarget(ext string, opaque bool) (string, imaging.Format) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "webp", "avif":
		return "jpg", imaging.JPEG
	case "png":
		if opaque {
			return "jpg", imaging.JPEG
		}
		return "png", imaging.PNG
	case "gif":
		return "gif", imaging.GIF
	case "bmp":
		return "jpg", imaging.JPEG
	default:
		return "jpg", imaging.JPEG
	}
}
