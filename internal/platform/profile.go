package platform

// Per-platform FFmpeg archive sources. Each archive is expected to
// contain exactly one file path ending in the executable name.
const (
	windowsArchiveURL = "https://github.com/BtbN/FFmpeg-Builds/releases/download/latest/ffmpeg-master-latest-win64-gpl.zip"
	darwinArchiveURL  = "https://evermeet.cx/ffmpeg/getrelease/ffmpeg/zip"
	linuxArchiveURL   = "https://johnvansickle.com/ffmpeg/releases/ffmpeg-release-amd64-static.tar.xz"
)

// ProfileFor returns the FFmpeg archive profile for the given GOOS value.
// Unknown systems fall back to the Linux profile, which matches how the
// static builds are published.
func ProfileFor(goos string) Profile {
	switch goos {
	case "windows":
		return Profile{
			ArchiveURL:     windowsArchiveURL,
			ExecutableName: "ffmpeg.exe",
			ArchiveKind:    ArchiveZip,
		}
	case "darwin":
		return Profile{
			ArchiveURL:     darwinArchiveURL,
			ExecutableName: "ffmpeg",
			ArchiveKind:    ArchiveZip,
		}
	default:
		return Profile{
			ArchiveURL:     linuxArchiveURL,
			ExecutableName: "ffmpeg",
			ArchiveKind:    ArchiveTarXz,
		}
	}
}
