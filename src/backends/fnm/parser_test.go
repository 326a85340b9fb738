package fnm

import (
	"testing"

	"github.com/nvmux/nvmux/src/internal/backend"
)

func TestParseInstalled(t *testing.T) {
	tests := []struct {
		name        string
		out         string
		wantLen     int
		wantDefault string
	}{
		{
			name:        "trailing asterisk marks default",
			out:         "v18.19.0\nv20.11.0 *\nv16.20.2\n",
			wantLen:     3,
			wantDefault: "20.11.0",
		},
		{
			name:        "bulleted listing with default annotation",
			out:         "* v16.20.2\n* v18.16.0 default\n* v20.11.0\n* system\n",
			wantLen:     3,
			wantDefault: "18.16.0",
		},
		{
			name:        "last default marker wins",
			out:         "v18.19.0 *\nv20.11.0 *\n",
			wantLen:     2,
			wantDefault: "20.11.0",
		},
		{
			name:    "no default marked",
			out:     "v18.19.0\nv20.11.0\n",
			wantLen: 2,
		},
		{
			name:    "empty output",
			out:     "",
			wantLen: 0,
		},
		{
			name:    "blank lines only",
			out:     "\n  \n\n",
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installed, err := ParseInstalled(tt.out)
			if err != nil {
				t.Fatalf("ParseInstalled() error = %v", err)
			}
			if len(installed) != tt.wantLen {
				t.Fatalf("ParseInstalled() returned %d entries, want %d", len(installed), tt.wantLen)
			}

			var gotDefault string
			for _, iv := range installed {
				if iv.Default {
					if gotDefault != "" {
						t.Errorf("multiple entries marked default")
					}
					gotDefault = iv.Version.String()
				}
			}
			if gotDefault != tt.wantDefault {
				t.Errorf("default = %q, want %q", gotDefault, tt.wantDefault)
			}
		})
	}
}

func TestParseInstalledUnrecognized(t *testing.T) {
	_, err := ParseInstalled("error: something broke\ntry again later\n")
	if !backend.IsParseFailed(err) {
		t.Errorf("ParseInstalled() error = %v, want parse failure", err)
	}
}

func TestParseRemote(t *testing.T) {
	out := "v18.16.0 (Hydrogen)\nv20.11.0 (Iron)\nv21.6.0\n"
	remote, err := ParseRemote(out)
	if err != nil {
		t.Fatalf("ParseRemote() error = %v", err)
	}
	if len(remote) != 3 {
		t.Fatalf("ParseRemote() returned %d entries, want 3", len(remote))
	}

	if !remote[0].LTS || remote[0].Codename != "Hydrogen" {
		t.Errorf("remote[0] = %+v, want LTS Hydrogen", remote[0])
	}
	if !remote[1].LTS || remote[1].Codename != "Iron" {
		t.Errorf("remote[1] = %+v, want LTS Iron", remote[1])
	}
	if remote[2].LTS || remote[2].Codename != "" {
		t.Errorf("remote[2] = %+v, want non-LTS", remote[2])
	}
}

func TestParseRemoteUnrecognized(t *testing.T) {
	_, err := ParseRemote("no versions here\n")
	if !backend.IsParseFailed(err) {
		t.Errorf("ParseRemote() error = %v, want parse failure", err)
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
		{"Installing Node v20.11.0 (arm64)", true, backend.PhaseResolving, 0},
		{"Downloading https://nodejs.org/dist/v20.11.0/node-v20.11.0-linux-x64.tar.xz", true, backend.PhaseDownloading, 0},
		{"  42%", true, backend.PhaseDownloading, 42},
		{"  97.5%", true, backend.PhaseDownloading, 97.5},
		{"extracting archive", true, backend.PhaseExtracting, 0},
		{"  55%", false, 0, 0}, // percent outside the download phase
		{"setting default alias", true, backend.PhaseLinking, 0},
		{"some unrelated chatter", false, 0, 0},
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

func TestParsePercent(t *testing.T) {
	tests := []struct {
		line   string
		want   float64
		wantOK bool
	}{
		{"42%", 42, true},
		{"97.5 %", 97.5, true},
		{"downloaded 100%", 100, true},
		{"250%", 100, true},
		{"no percent here", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePercent(tt.line)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parsePercent(%q) = %v, %v, want %v, %v", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}
