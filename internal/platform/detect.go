package platform

import (
	"context"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// DefaultProfile returns the archive profile for the running build target.
func DefaultProfile() Profile {
	return ProfileFor(runtime.GOOS)
}

// RealDetector implements Detector using actual host detection.
type RealDetector struct{}

// NewDetector creates a new host detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect returns host platform information. OS and architecture come
// from the runtime; Linux distribution details come from gopsutil.
//
// If distro detection fails, the distro fields are left empty and
// detection still succeeds — the compression pipeline only needs OS
// and architecture, distro details are informational.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if runtime.GOOS == "linux" {
		plat, _, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return info, nil
		}
		info.Platform = strings.ToLower(strings.TrimSpace(plat))
		info.Version = strings.TrimSpace(version)
	}

	return info, nil
}
