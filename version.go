package ledger

// Release is the version of this build. Both values can be overwritten at
// link time, for example
//
//   go build -ldflags "-X github.com/campuspay/ledger.GitCommit=$(git rev-parse --short HEAD)"
var (
	Release   = "v0.1.0-dev"
	GitCommit = ""
)

// Version returns the release, followed by the commit hash when known.
func Version() string {
	if GitCommit == "" {
		return Release
	}
	return Release + "+" + GitCommit
}
