package version

import "runtime/debug"

// Set at build time with e.g.
// go build -ldflags "-X github.com/a5af/pianoroll/version.Version=$(git describe --dirty)"
var Version string

// Hash is the short vcs revision the binary was built from, with a -dirty
// suffix for a modified tree.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	modified := false
	revision := ""
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.modified":
			modified = setting.Value == "true"
		case "vcs.revision":
			revision = setting.Value
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified {
		return revision + "-dirty"
	}
	return revision
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if Hash != "" {
		return Hash
	}
	return "dev"
}()
