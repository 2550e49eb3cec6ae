// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import "fmt"

const (
	// SemVer is the semantic version of loirc.
	SemVer = "0.1.0"
)

var (
	// Commit is the current git commit.
	Commit = ""

	// Ver is the full version of loirc, used in CTCP VERSION replies and
	// the --version output.
	Ver = fmt.Sprintf("loirc-%s", SemVer)
)

// SetVersionString provides the tagged version and the git hash, normally
// injected via linker flags.
func SetVersionString(version, commit string) {
	Commit = commit
	if version != "" {
		Ver = fmt.Sprintf("loirc-%s", version)
	} else if Commit != "" {
		Ver = fmt.Sprintf("loirc-%s-%s", SemVer, Commit)
	}
}
