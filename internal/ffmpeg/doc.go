// Package ffmpeg provisions the FFmpeg executable on demand.
//
// The Manager probes two candidate locations for a usable binary: the
// managed install path under the application data directory, and the
// host's search path. When neither responds to a liveness probe, it
// downloads the platform's archive, extracts the executable, and
// re-probes the install path.
//
// # Architecture
//
// The package is organized into several components:
//   - Manager: orchestrates probe, download, extract, re-probe
//   - Locator: liveness probing via "ffmpeg -version"
//   - Fetcher: HTTP download of the platform archive
//   - Extractor: pulls the executable out of a zip or tar.xz archive
//
// The extracted executable persists under the data directory across
// process restarts, so subsequent probes act as a cheap cache. No
// manifest, version file, or checksum is kept alongside it.
package ffmpeg
