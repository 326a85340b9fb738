package fnm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/node"
)

// fnm marks the default either with a trailing "*" or with a "default"
// alias annotation, depending on release line. Both are accepted, and
// when several lines carry a marker the last one wins.

var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// ParseInstalled parses `fnm ls` output into installed versions. Lines
// that do not resemble a version entry are skipped; the parser only
// fails when the output had content but not a single line matched.
func ParseInstalled(out string) ([]node.Installed, error) {
	var (
		installed  []node.Installed
		defaultIdx = -1
		sawContent bool
	)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sawContent = true

		line = strings.TrimPrefix(line, "* ")
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "system" {
			continue
		}

		v, err := node.Parse(fields[0])
		if err != nil || v.IsAlias() {
			continue
		}

		entry := node.Installed{Version: v}
		for _, annotation := range fields[1:] {
			if annotation == "*" || annotation == "default" {
				defaultIdx = len(installed)
			}
		}
		installed = append(installed, entry)
	}

	if sawContent && len(installed) == 0 {
		return nil, &backend.ErrParseFailed{
			Source: "fnm ls",
			Detail: "no version entries recognized",
		}
	}
	if defaultIdx >= 0 {
		installed[defaultIdx].Default = true
	}
	return installed, nil
}

// ParseRemote parses `fnm ls-remote` output. A parenthesized codename
// after the version marks an LTS release.
func ParseRemote(out string) ([]node.Remote, error) {
	var (
		remote     []node.Remote
		sawContent bool
	)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sawContent = true

		line = strings.TrimPrefix(line, "* ")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		v, err := node.Parse(fields[0])
		if err != nil || v.IsAlias() {
			continue
		}

		entry := node.Remote{Version: v}
		if len(fields) > 1 {
			if codename, ok := parenthesized(strings.Join(fields[1:], " ")); ok {
				entry.Codename = codename
				entry.LTS = true
			}
		}
		remote = append(remote, entry)
	}

	if sawContent && len(remote) == 0 {
		return nil, &backend.ErrParseFailed{
			Source: "fnm ls-remote",
			Detail: "no version entries recognized",
		}
	}
	return remote, nil
}

func parenthesized(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return "", false
	}
	return inner, true
}

// progressParser translates fnm install output lines into install
// phases. Unrecognized lines leave the previous phase in place, so a
// chatty or localized build degrades to fewer updates instead of
// failing the install.
type progressParser struct {
	phase   backend.InstallPhase
	percent float64
}

func newProgressParser() *progressParser {
	return &progressParser{phase: backend.PhaseResolving}
}

// Parse inspects one output line and reports the progress update it
// implies, if any.
func (pp *progressParser) Parse(line string) (backend.InstallProgress, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return backend.InstallProgress{}, false
	}
	lower := strings.ToLower(trimmed)

	switch {
	case strings.Contains(lower, "installing"):
		pp.phase = backend.PhaseResolving
		return backend.Resolving(trimmed), true
	case strings.Contains(lower, "download") || strings.Contains(lower, "fetching"):
		pp.phase = backend.PhaseDownloading
		if pct, ok := parsePercent(lower); ok {
			pp.percent = pct
		}
		return backend.Downloading(pp.percent), true
	case strings.Contains(lower, "extract") || strings.Contains(lower, "unpack"):
		pp.phase = backend.PhaseExtracting
		return backend.Extracting(), true
	case strings.Contains(lower, "default") || strings.Contains(lower, "alias"):
		pp.phase = backend.PhaseLinking
		return backend.Linking(), true
	}

	// Bare percentage ticks belong to whatever phase emitted them;
	// only the download phase reports them upstream.
	if pct, ok := parsePercent(lower); ok && pp.phase == backend.PhaseDownloading {
		pp.percent = pct
		return backend.Downloading(pp.percent), true
	}
	return backend.InstallProgress{}, false
}

func parsePercent(line string) (float64, bool) {
	m := percentPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}
