// Package buildinfo reports the version of the lsr binary.
//
// The values default to a development build and are stamped at link time:
//
//	go build -ldflags "-X github.com/matzehuels/lsr/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/lsr/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/lsr/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/lsr
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the source revision.
	Commit = "none"

	// Date is the UTC build time in RFC 3339 form.
	Date = "unknown"
)

// Dev reports whether the binary was built without a release version.
func Dev() bool {
	return Version == "dev"
}

// String returns the build information as "key: value" lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template. Development builds omit the
// commit and date lines.
func Template() string {
	if Dev() {
		return "{{.Name}} version " + Version + "\n"
	}
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
