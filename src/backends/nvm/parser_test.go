package nvm

import (
	"testing"

	"github.com/nvmux/nvmux/src/internal/backend"
)

const unixListing = `->     v18.19.0
       v20.11.0
default -> 18.19 (-> v18.19.0)
iojs -> N/A (default)
lts/* -> lts/iron (-> v20.11.0)
node -> stable (-> v20.11.0) (default)
stable -> 20.11 (-> v20.11.0) (default)
system
`

const windowsListing = `
  * 20.11.0 (Currently using 64-bit executable)
    18.19.0
    16.20.2
`

func TestParseInstalledUnix(t *testing.T) {
	installed, err := ParseInstalled(unixListing)
	if err != nil {
		t.Fatalf("ParseInstalled() error = %v", err)
	}
	if len(installed) != 2 {
		t.Fatalf("ParseInstalled() returned %d entries, want 2 (aliases and system skipped)", len(installed))
	}
	if !installed[0].Default || installed[0].Version.String() != "18.19.0" {
		t.Errorf("installed[0] = %+v, want default v18.19.0", installed[0])
	}
	if installed[1].Default {
		t.Errorf("installed[1] marked default, want only the arrow line")
	}
}

func TestParseInstalledWindows(t *testing.T) {
	installed, err := ParseInstalled(windowsListing)
	if err != nil {
		t.Fatalf("ParseInstalled() error = %v", err)
	}
	if len(installed) != 3 {
		t.Fatalf("ParseInstalled() returned %d entries, want 3", len(installed))
	}
	if !installed[0].Default || installed[0].Version.String() != "20.11.0" {
		t.Errorf("installed[0] = %+v, want default v20.11.0", installed[0])
	}
	if installed[0].Arch != "64-bit" {
		t.Errorf("installed[0].Arch = %q, want 64-bit", installed[0].Arch)
	}
}

func TestParseInstalledLastMarkerWins(t *testing.T) {
	installed, err := ParseInstalled("-> v18.19.0\n-> v20.11.0\n")
	if err != nil {
		t.Fatalf("ParseInstalled() error = %v", err)
	}
	var defaults []string
	for _, iv := range installed {
		if iv.Default {
			defaults = append(defaults, iv.Version.String())
		}
	}
	if len(defaults) != 1 || defaults[0] != "20.11.0" {
		t.Errorf("defaults = %v, want only 20.11.0", defaults)
	}
}

func TestParseInstalledEmpty(t *testing.T) {
	installed, err := ParseInstalled("")
	if err != nil {
		t.Fatalf("ParseInstalled() error = %v", err)
	}
	if len(installed) != 0 {
		t.Errorf("ParseInstalled() = %v, want empty", installed)
	}
}

func TestParseInstalledUnrecognized(t *testing.T) {
	_, err := ParseInstalled("nvm: command produced garbage\n")
	if !backend.IsParseFailed(err) {
		t.Errorf("ParseInstalled() error = %v, want parse failure", err)
	}
}

func TestParseRemoteUnix(t *testing.T) {
	out := `        v18.19.0   (LTS: Hydrogen)
        v18.20.0   (Latest LTS: Hydrogen)
        v20.11.0   (LTS: Iron)
        v21.6.0
`
	remote, err := ParseRemote(out)
	if err != nil {
		t.Fatalf("ParseRemote() error = %v", err)
	}
	if len(remote) != 4 {
		t.Fatalf("ParseRemote() returned %d entries, want 4", len(remote))
	}

	wantLTS := []struct {
		lts      bool
		codename string
	}{
		{true, "Hydrogen"},
		{true, "Hydrogen"},
		{true, "Iron"},
		{false, ""},
	}
	for i, want := range wantLTS {
		if remote[i].LTS != want.lts || remote[i].Codename != want.codename {
			t.Errorf("remote[%d] = %+v, want LTS=%v codename=%q", i, remote[i], want.lts, want.codename)
		}
	}
}

func TestParseRemoteWindowsTable(t *testing.T) {
	out := `
|   CURRENT    |     LTS      |  OLD STABLE  | OLD UNSTABLE |
|--------------|--------------|--------------|--------------|
|    21.6.2    |   20.11.1    |   0.12.18    |   0.11.16    |
|    21.6.1    |   20.11.0    |   0.12.17    |   0.11.15    |

This is a partial list. For a complete list, visit https://nodejs.org/en/download/releases
`
	remote, err := ParseRemote(out)
	if err != nil {
		t.Fatalf("ParseRemote() error = %v", err)
	}
	if len(remote) != 8 {
		t.Fatalf("ParseRemote() returned %d entries, want 8", len(remote))
	}

	var ltsVersions []string
	for _, rv := range remote {
		if rv.LTS {
			ltsVersions = append(ltsVersions, rv.Version.String())
		}
	}
	if len(ltsVersions) != 2 || ltsVersions[0] != "20.11.1" || ltsVersions[1] != "20.11.0" {
		t.Errorf("LTS versions = %v, want the LTS column only", ltsVersions)
	}
}

func TestParseRemoteUnrecognized(t *testing.T) {
	_, err := ParseRemote("no versions today\n")
	if !backend.IsParseFailed(err) {
		t.Errorf("ParseRemote() error = %v, want parse failure", err)
	}
}

func TestLtsParenthetical(t *testing.T) {
	tests := []struct {
		in       string
		codename string
		ok       bool
	}{
		{"(LTS: Iron)", "Iron", true},
		{"(Latest LTS: Hydrogen)", "Hydrogen", true},
		{"(LTS)", "", true},
		{"(Iron)", "", false},
		{"no parens", "", false},
	}

	for _, tt := range tests {
		codename, ok := ltsParenthetical(tt.in)
		if ok != tt.ok || codename != tt.codename {
			t.Errorf("ltsParenthetical(%q) = %q, %v, want %q, %v", tt.in, codename, ok, tt.codename, tt.ok)
		}
	}
}

func TestProgressParser(t *testing.T) {
	parser := newProgressParser()

	steps := []struct {
		line      string
		wantOK    bool
		wantPhase backend.InstallPhase
		wantPct   float64
	}{
		{"Downloading and installing node v20.11.0...", true, backend.PhaseDownloading, 0},
		{"######################## 42.0%", true, backend.PhaseDownloading, 42},
		{"######################## 100.0%", true, backend.PhaseDownloading, 100},
		{"Computing checksum with sha256sum", true, backend.PhaseExtracting, 0},
		{"Checksums matched!", true, backend.PhaseExtracting, 0},
		{"Now using node v20.11.0 (npm v10.2.4)", true, backend.PhaseLinking, 0},
		{"Creating default alias: default -> 20.11.0", true, backend.PhaseLinking, 0},
		{"random chatter", false, 0, 0},
	}

	for _, step := range steps {
		progress, ok := parser.Parse(step.line)
		if ok != step.wantOK {
			t.Fatalf("Parse(%q) ok = %v, want %v", step.line, ok, step.wantOK)
		}
		if !ok {
			continue
		}
		if progress.Phase != step.wantPhase {
			t.Errorf("Parse(%q) phase = %v, want %v", step.line, progress.Phase, step.wantPhase)
		}
		if progress.Phase == backend.PhaseDownloading && progress.Percent != step.wantPct {
			t.Errorf("Parse(%q) percent = %v, want %v", step.line, progress.Percent, step.wantPct)
		}
	}
}
