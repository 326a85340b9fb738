package nvm

import (
	"strings"
	"testing"

	"github.com/nvmux/nvmux/src/internal/backend"
)

func TestSafeArg(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"20.11.0", true},
		{"v20.11.0", true},
		{"lts/iron", true},
		{"lts/*", true},
		{"--no-colors", true},
		{"--lts=iron", true},
		{"", false},
		{"20.11.0; rm -rf /", false},
		{"$(whoami)", false},
		{"`id`", false},
		{"a b", false},
		{"version\n", false},
	}

	for _, tt := range tests {
		if got := safeArg(tt.arg); got != tt.want {
			t.Errorf("safeArg(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/home/dev/.nvm", "'/home/dev/.nvm'"},
		{"/home/o'brien/.nvm", `'/home/o'\''brien/.nvm'`},
		{"plain", "'plain'"},
	}

	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSourcedScript(t *testing.T) {
	env := backend.Environment{
		Kind:      backend.KindNvm,
		ExecPath:  "/home/dev/.nvm/nvm.sh",
		ShellInit: backend.ShellInitOptions{Prelude: "export NVM_LAZY=1"},
	}

	script := sourcedScript(env)

	lines := strings.Split(strings.TrimSpace(script), "\n")
	if lines[0] != "export NVM_LAZY=1" {
		t.Errorf("prelude is not the first line: %q", lines[0])
	}
	if !strings.Contains(script, "export NVM_DIR='/home/dev/.nvm'") {
		t.Errorf("script does not export NVM_DIR:\n%s", script)
	}
	if !strings.Contains(script, ". '/home/dev/.nvm/nvm.sh'") {
		t.Errorf("script does not source nvm.sh:\n%s", script)
	}
	if lines[len(lines)-1] != `nvm "$@"` {
		t.Errorf("script does not forward arguments positionally:\n%s", script)
	}
}

func TestSourcedScriptDefaultDir(t *testing.T) {
	env := backend.Environment{
		Kind:      backend.KindNvm,
		WSLDistro: "Ubuntu-22.04",
	}

	script := sourcedScript(env)

	if !strings.Contains(script, `export NVM_DIR="${NVM_DIR:-$HOME/.nvm}"`) {
		t.Errorf("script does not default NVM_DIR inside the distro:\n%s", script)
	}
	if !strings.Contains(script, `. "$NVM_DIR/nvm.sh"`) {
		t.Errorf("script does not source the default nvm.sh:\n%s", script)
	}
}

func TestCommandRejectsUnsafeArgs(t *testing.T) {
	p := &Provider{env: backend.Environment{Kind: backend.KindNvm, ExecPath: "/home/dev/.nvm/nvm.sh"}}

	_, err := p.command(0, []string{"install", "20.11.0 && curl evil"})
	if !backend.IsIOError(err) {
		t.Fatalf("command() error = %v, want refused argument", err)
	}
}

func TestCommandForWSL(t *testing.T) {
	p := &Provider{env: backend.Environment{
		Kind:      backend.KindNvm,
		ExecPath:  "/home/dev/.nvm/nvm.sh",
		WSLDistro: "Ubuntu-22.04",
	}}

	cmd, err := p.command(0, []string{"ls", "--no-colors"})
	if err != nil {
		t.Fatalf("command() error = %v", err)
	}
	if cmd.Path != "wsl.exe" {
		t.Errorf("cmd.Path = %q, want wsl.exe", cmd.Path)
	}
	if len(cmd.Args) < 2 || cmd.Args[0] != "-d" || cmd.Args[1] != "Ubuntu-22.04" {
		t.Errorf("cmd.Args = %v, want a -d Ubuntu-22.04 prefix", cmd.Args)
	}
	if cmd.Args[len(cmd.Args)-1] != "--no-colors" {
		t.Errorf("cmd.Args = %v, want trailing forwarded arguments", cmd.Args)
	}
}
