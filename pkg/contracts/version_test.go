package contracts

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.OS != runtime.GOOS || info.Architecture != runtime.GOARCH {
		t.Errorf("platform = %s/%s, want %s/%s", info.OS, info.Architecture, runtime.GOOS, runtime.GOARCH)
	}
}

func TestGetFullVersionString(t *testing.T) {
	s := GetFullVersionString()

	if !strings.HasPrefix(s, "chngfilter v"+Version) {
		t.Errorf("unexpected prefix: %s", s)
	}
	if !strings.Contains(s, "commit: "+GitCommit) {
		t.Errorf("missing commit: %s", s)
	}
}
