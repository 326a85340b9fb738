package nvm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/node"
)

// nvm's two distributions print different listings. Unix nvm marks the
// selected version with a leading "->" and appends alias lines such as
// "default -> 18.19 (-> v18.19.0)". nvm-windows marks it with a
// leading "*" and a "(Currently using 64-bit executable)" note. The
// parser accepts both; when several lines carry a marker the last one
// wins.

var (
	percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	archPattern    = regexp.MustCompile(`(\d+-bit)`)
)

// ParseInstalled parses `nvm ls` or `nvm list` output.
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

		marked := false
		if rest, ok := strings.CutPrefix(line, "->"); ok {
			line = strings.TrimSpace(rest)
			marked = true
		} else if rest, ok := strings.CutPrefix(line, "*"); ok {
			line = strings.TrimSpace(rest)
			marked = true
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		v, err := node.Parse(fields[0])
		if err != nil || v.IsAlias() {
			// Alias lines ("default -> v18.19.0"), "system", "N/A".
			continue
		}

		entry := node.Installed{Version: v}
		if rest := strings.Join(fields[1:], " "); rest != "" {
			lower := strings.ToLower(rest)
			if strings.Contains(lower, "currently using") {
				marked = true
				if m := archPattern.FindString(rest); m != "" {
					entry.Arch = m
				}
			}
		}
		if marked {
			defaultIdx = len(installed)
		}
		installed = append(installed, entry)
	}

	if sawContent && len(installed) == 0 {
		return nil, &backend.ErrParseFailed{
			Source: "nvm ls",
			Detail: "no version entries recognized",
		}
	}
	if defaultIdx >= 0 {
		installed[defaultIdx].Default = true
	}
	return installed, nil
}

// ParseRemote parses `nvm ls-remote` output. nvm spells the LTS note
// as "(LTS: Iron)" or "(Latest LTS: Iron)". nvm-windows has no
// ls-remote; its `nvm list available` table is handled separately.
func ParseRemote(out string) ([]node.Remote, error) {
	if strings.Contains(out, "|") {
		return parseAvailableTable(out)
	}

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

		line = strings.TrimSpace(strings.TrimPrefix(line, "->"))
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		v, err := node.Parse(fields[0])
		if err != nil || v.IsAlias() {
			continue
		}

		entry := node.Remote{Version: v}
		if rest := strings.Join(fields[1:], " "); rest != "" {
			if codename, ok := ltsParenthetical(rest); ok {
				entry.Codename = codename
				entry.LTS = true
			}
		}
		remote = append(remote, entry)
	}

	if sawContent && len(remote) == 0 {
		return nil, &backend.ErrParseFailed{
			Source: "nvm ls-remote",
			Detail: "no version entries recognized",
		}
	}
	return remote, nil
}

// ltsParenthetical extracts the codename from "(LTS: Iron)" or
// "(Latest LTS: Iron)". A bare "(LTS)" marks LTS without a codename.
func ltsParenthetical(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	lower := strings.ToLower(inner)
	switch {
	case strings.HasPrefix(lower, "latest lts"):
		inner = inner[len("latest lts"):]
	case strings.HasPrefix(lower, "lts"):
		inner = inner[len("lts"):]
	default:
		return "", false
	}
	inner = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(inner), ":"))
	return strings.TrimSpace(inner), true
}

// parseAvailableTable parses the `nvm list available` table printed by
// nvm-windows. The header row names the columns; entries under an
// "LTS" heading are flagged as LTS releases.
func parseAvailableTable(out string) ([]node.Remote, error) {
	var (
		remote []node.Remote
		ltsCol = -1
		header bool
	)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		cells := splitTableRow(line)
		if len(cells) == 0 || isSeparatorRow(cells) {
			continue
		}

		if !header {
			header = true
			for i, cell := range cells {
				if strings.EqualFold(cell, "lts") {
					ltsCol = i
				}
			}
			continue
		}

		for i, cell := range cells {
			v, err := node.Parse(cell)
			if err != nil || v.IsAlias() {
				continue
			}
			remote = append(remote, node.Remote{Version: v, LTS: i == ltsCol})
		}
	}

	if len(remote) == 0 {
		return nil, &backend.ErrParseFailed{
			Source: "nvm list available",
			Detail: "no version entries recognized",
		}
	}
	return remote, nil
}

func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if cell != "" && strings.Trim(cell, "-") != "" {
			return false
		}
	}
	return true
}

// splitTableRow splits a "|"-delimited row into trimmed cells, keeping
// empty cells so column positions stay aligned with the header.
func splitTableRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

// progressParser translates nvm install output into install phases.
// nvm announces "Downloading and installing node v20.11.0...", draws
// a curl progress bar with carriage returns, then prints checksum and
// "Now using" lines.
type progressParser struct {
	phase   backend.InstallPhase
	percent float64
}

func newProgressParser() *progressParser {
	return &progressParser{phase: backend.PhaseResolving}
}

func (pp *progressParser) Parse(line string) (backend.InstallProgress, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return backend.InstallProgress{}, false
	}
	lower := strings.ToLower(trimmed)

	switch {
	case strings.Contains(lower, "download"):
		pp.phase = backend.PhaseDownloading
		if pct, ok := parsePercent(lower); ok {
			pp.percent = pct
		}
		return backend.Downloading(pp.percent), true
	case strings.Contains(lower, "checksum") || strings.Contains(lower, "extract"):
		pp.phase = backend.PhaseExtracting
		return backend.Extracting(), true
	case strings.Contains(lower, "now using") || strings.Contains(lower, "alias"):
		pp.phase = backend.PhaseLinking
		return backend.Linking(), true
	case strings.Contains(lower, "installing"):
		pp.phase = backend.PhaseResolving
		return backend.Resolving(trimmed), true
	}

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
