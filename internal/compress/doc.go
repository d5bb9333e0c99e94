// Package compress reduces the storage footprint of video and image
// files while keeping acceptable visual quality.
//
// Videos are re-encoded out of process by the provisioned FFmpeg binary
// with a fixed constant-quality policy. Images are decoded in process,
// downscaled when oversized, and re-encoded per a fixed format policy,
// with a size-regression fallback: if the encode is not smaller than
// the input, the original bytes are copied to the destination instead,
// so the output is never larger than the input.
//
// Both paths report a single number, the byte size of the file actually
// written, measured from disk rather than estimated.
package compress
