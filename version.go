package custody

// GitCommit is set at build time with
//
//   -ldflags "-X github.com/iov-one/custody.GitCommit=<hash>"
var GitCommit = ""

// release is the semantic version of this source tree.
const release = "v0.1.0-dev"

// Version returns the release, followed by the commit hash when known.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
