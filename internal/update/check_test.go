package update

import (
	"testing"
	"time"
)

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim v prefix", input: "v1.2.3", want: "1.2.3"},
		{name: "strip suffix", input: "1.2.3-beta1", want: "1.2.3"},
		{name: "whitespace", input: "  v2.0  ", want: "2.0"},
		{name: "non-numeric", input: "dev", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeVersion(tc.input); got != tc.want {
				t.Fatalf("NormalizeVersion(%q)=%q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCompareVersionStrings(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		wantCmp  int
		wantOkay bool
	}{
		{name: "equal different lengths", a: "1.2", b: "1.2.0", wantCmp: 0, wantOkay: true},
		{name: "less than", a: "1.2.3", b: "1.10.0", wantCmp: -1, wantOkay: true},
		{name: "greater than", a: "2.0", b: "1.9.9", wantCmp: 1, wantOkay: true},
		{name: "invalid", a: "1.a", b: "1.2.3", wantCmp: 0, wantOkay: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmp, ok := CompareVersionStrings(tc.a, tc.b)
			if ok != tc.wantOkay {
				t.Fatalf("CompareVersionStrings(%q,%q) ok=%v, want %v", tc.a, tc.b, ok, tc.wantOkay)
			}
			if !ok {
				return
			}
			if cmp != tc.wantCmp {
				t.Fatalf("CompareVersionStrings(%q,%q)=%d, want %d", tc.a, tc.b, cmp, tc.wantCmp)
			}
		})
	}
}

func TestIsVersionOutdated(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{name: "outdated", current: "1.0.0", latest: "v1.1.0", want: true},
		{name: "current", current: "1.1.0", latest: "v1.1.0", want: false},
		{name: "ahead of release", current: "2.0.0", latest: "v1.9.0", want: false},
		{name: "dev build", current: "dev", latest: "v1.1.0", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsVersionOutdated(tc.current, tc.latest); got != tc.want {
				t.Fatalf("IsVersionOutdated(%q,%q)=%v, want %v", tc.current, tc.latest, got, tc.want)
			}
		})
	}
}

func TestShouldCheckForUpdates(t *testing.T) {
	if !ShouldCheckForUpdates(nil) {
		t.Error("nil state should trigger a check")
	}
	if !ShouldCheckForUpdates(&State{}) {
		t.Error("zero LastChecked should trigger a check")
	}
	recent := &State{LastChecked: time.Now().Add(-time.Hour)}
	if ShouldCheckForUpdates(recent) {
		t.Error("recent check should not trigger another")
	}
	stale := &State{LastChecked: time.Now().Add(-25 * time.Hour)}
	if !ShouldCheckForUpdates(stale) {
		t.Error("check older than the interval should trigger")
	}
}

func TestStateRoundTrip(t *testing.T) {
	dir := t.TempDir()

	loaded, err := loadStateFromDir(dir)
	if err != nil {
		t.Fatalf("loadStateFromDir on empty dir: %v", err)
	}
	if !loaded.LastChecked.IsZero() {
		t.Errorf("fresh state should be zero, got %+v", loaded)
	}

	state := &State{
		LastChecked:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		LatestVersion: "v1.4.0",
	}
	if err := saveStateToDir(dir, state); err != nil {
		t.Fatalf("saveStateToDir: %v", err)
	}

	loaded, err = loadStateFromDir(dir)
	if err != nil {
		t.Fatalf("loadStateFromDir: %v", err)
	}
	if !loaded.LastChecked.Equal(state.LastChecked) || loaded.LatestVersion != state.LatestVersion {
		t.Errorf("got %+v, want %+v", loaded, state)
	}
}
