package nvm

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/constants"
	"github.com/nvmux/nvmux/src/internal/proc"
)

// nvm on Unix is a shell function, not a binary. Every invocation
// sources nvm.sh inside a fresh bash and forwards the arguments as
// positional parameters, so no argument is ever interpolated into the
// script text. nvm-windows ships a real nvm.exe and is invoked
// directly.

// safeArg accepts version strings, alias names, and flags. Anything
// else is refused before a shell ever sees it; "$@" forwarding keeps
// the shell from interpreting arguments, but nvm itself would still
// misread them.
func safeArg(arg string) bool {
	if arg == "" {
		return false
	}
	for _, r := range arg {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '_' || r == '/' || r == '*' || r == '=':
		default:
			return false
		}
	}
	return true
}

// shellQuote single-quotes s for embedding in a bash script.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// sourcedScript builds the bash script that loads nvm and runs the
// forwarded arguments. The caller-provided prelude is spliced first,
// verbatim. Without an explicit path the script falls back to the
// shell's own NVM_DIR, which is how a WSL distro is reached from a
// Windows host that cannot stat files inside it.
func sourcedScript(env backend.Environment) string {
	var b strings.Builder
	if env.ShellInit.Prelude != "" {
		b.WriteString(env.ShellInit.Prelude)
		b.WriteString("\n")
	}
	if env.ExecPath == "" {
		b.WriteString(`export NVM_DIR="${NVM_DIR:-$HOME/.nvm}"` + "\n")
		b.WriteString(`. "$NVM_DIR/nvm.sh"` + "\n")
	} else {
		fmt.Fprintf(&b, "export NVM_DIR=%s\n", shellQuote(filepath.Dir(env.ExecPath)))
		fmt.Fprintf(&b, ". %s\n", shellQuote(env.ExecPath))
	}
	b.WriteString(`nvm "$@"` + "\n")
	return b.String()
}

// command composes the subprocess invocation for one nvm call.
func (p *Provider) command(timeout time.Duration, args []string) (proc.Command, error) {
	for _, arg := range args {
		if !safeArg(arg) {
			return proc.Command{}, &backend.ErrIO{
				Op:  "compose nvm command",
				Err: fmt.Errorf("argument %q contains characters nvm cannot take", arg),
			}
		}
	}

	if p.direct {
		return proc.Command{
			Path:       p.env.ExecPath,
			Args:       args,
			Timeout:    timeout,
			ShowWindow: p.env.ShowWindow,
		}, nil
	}

	script := sourcedScript(p.env)
	if p.env.WSLDistro != "" {
		return proc.Command{
			Path:       "wsl.exe",
			Args:       append([]string{"-d", p.env.WSLDistro, constants.ShellBash, "-c", script, "nvm"}, args...),
			Timeout:    timeout,
			ShowWindow: p.env.ShowWindow,
		}, nil
	}
	return proc.Command{
		Path:       constants.ShellBash,
		Args:       append([]string{"-c", script, "nvm"}, args...),
		Timeout:    timeout,
		ShowWindow: p.env.ShowWindow,
	}, nil
}
