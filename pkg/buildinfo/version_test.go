package buildinfo

import (
	"runtime/debug"
	"testing"
)

func withVars(t *testing.T, version, commit, date string) {
	t.Helper()
	oldV, oldC, oldD, oldRead := Version, Commit, Date, readBuildInfo
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() {
		Version, Commit, Date, readBuildInfo = oldV, oldC, oldD, oldRead
	})
}

func TestResolveFromBuildInfo(t *testing.T) {
	withVars(t, "dev", "none", "unknown")
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.3.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2024-01-02T03:04:05Z"},
			},
		}, true
	}

	resolve()

	if Version != "v0.3.0" || Commit != "abc123" || Date != "2024-01-02T03:04:05Z" {
		t.Errorf("resolve() = %q %q %q", Version, Commit, Date)
	}
}

func TestResolveKeepsLdflags(t *testing.T) {
	withVars(t, "v1.0.0", "deadbeef", "2025-01-01")
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main:     debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
		}, true
	}

	resolve()

	if Version != "v1.0.0" || Commit != "deadbeef" || Date != "2025-01-01" {
		t.Errorf("ldflags values were overwritten: %q %q %q", Version, Commit, Date)
	}
}

func TestString(t *testing.T) {
	withVars(t, "v1.2.3", "c0ffee", "today")

	want := "version: v1.2.3\ncommit: c0ffee\nbuilt: today"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Template(); got != "{{.Name}} version v1.2.3\ncommit: c0ffee\nbuilt: today\n" {
		t.Errorf("Template() = %q", got)
	}
}
