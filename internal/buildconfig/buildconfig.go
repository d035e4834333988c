package buildconfig

// Build-time variables injected via ldflags:
//
//	-X github.com/Harshitk-cp/dempster/internal/buildconfig.version=v1.2.0
var (
	version = "dev"
	commit  = "unknown"
)

// Service is the name reported by /version and the startup log.
const Service = "dempster"

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// VersionInfo returns full version information
func VersionInfo() map[string]string {
	return map[string]string{
		"service": Service,
		"version": version,
		"commit":  commit,
	}
}
