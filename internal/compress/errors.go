package compress

import "errors"

// Static errors for compression operations.
var (
	// ErrNotFound is returned when the input file does not exist.
	ErrNotFound = errors.New("input file does not exist")
	// ErrToolMissing is returned when the transcoding executable is
	// absent at invocation time, distinguished from a generic failure
	// by inspecting the subprocess diagnostics.
	ErrToolMissing = errors.New("ffmpeg is not installed. Please install ffmpeg to compress videos")
	// ErrToolRejected is returned when the executable ran but reported
	// failure for reasons other than absence.
	ErrToolRejected = errors.New("video compression failed")
	// ErrCodec is returned when in-process image decode or encode fails.
	ErrCodec = errors.New("image codec failure")
)
