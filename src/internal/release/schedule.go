package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nvmux/nvmux/src/internal/backend"
)

// Cycle is one release line of the upstream schedule. Dates are kept
// as "2006-01-02" strings exactly as published.
type Cycle struct {
	Line        string `json:"-"` // schedule key, e.g. "v18"
	Start       string `json:"start"`
	LTS         string `json:"lts,omitempty"`
	Maintenance string `json:"maintenance,omitempty"`
	End         string `json:"end"`
	Codename    string `json:"codename,omitempty"`
}

// Major extracts the numeric major from the line key, -1 for the old
// "v0.x" style lines.
func (c Cycle) Major() int {
	trimmed := strings.TrimPrefix(c.Line, "v")
	if strings.Contains(trimmed, ".") {
		return -1
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1
	}
	return n
}

// IsLTS reports whether the line ever enters LTS.
func (c Cycle) IsLTS() bool {
	return c.LTS != ""
}

// Status classifies the line relative to now: "pending", "current",
// "active lts", "maintenance", or "end-of-life". Unparseable dates
// degrade to "unknown", never an error.
func (c Cycle) Status(now time.Time) string {
	start, ok := parseDay(c.Start)
	if !ok {
		return "unknown"
	}
	end, ok := parseDay(c.End)
	if !ok {
		return "unknown"
	}

	switch {
	case now.Before(start):
		return "pending"
	case !now.Before(end):
		return "end-of-life"
	}
	if maint, ok := parseDay(c.Maintenance); ok && !now.Before(maint) {
		return "maintenance"
	}
	if lts, ok := parseDay(c.LTS); ok && !now.Before(lts) {
		return "active lts"
	}
	return "current"
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Schedule is the full release schedule, newest line first.
type Schedule struct {
	Cycles []Cycle
}

// Cycle finds the line for a major number.
func (s *Schedule) Cycle(major int) (Cycle, bool) {
	for _, c := range s.Cycles {
		if c.Major() == major {
			return c, true
		}
	}
	return Cycle{}, false
}

// Schedule fetches and decodes the Node.js release schedule.
func (c *Client) Schedule(ctx context.Context) (*Schedule, error) {
	body, err := c.get(ctx, c.scheduleURL)
	if err != nil {
		return nil, err
	}
	return DecodeSchedule(body)
}

// DecodeSchedule parses the upstream schedule format, a JSON object
// keyed by line name. The same format serves as the on-disk cache.
func DecodeSchedule(body []byte) (*Schedule, error) {
	var raw map[string]Cycle
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &backend.ErrParseFailed{Source: "release schedule", Detail: err.Error()}
	}

	cycles := make([]Cycle, 0, len(raw))
	for line, cycle := range raw {
		cycle.Line = line
		cycles = append(cycles, cycle)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Major() > cycles[j].Major()
	})

	return &Schedule{Cycles: cycles}, nil
}

// Encode renders the schedule back into the upstream format.
func (s *Schedule) Encode() ([]byte, error) {
	raw := make(map[string]Cycle, len(s.Cycles))
	for _, cycle := range s.Cycles {
		raw[cycle.Line] = cycle
	}
	return json.Marshal(raw)
}

// get performs one GET and returns the body. Transport and status
// failures map to ErrNetwork.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &backend.ErrNetwork{URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &backend.ErrNetwork{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &backend.ErrNetwork{URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &backend.ErrNetwork{URL: url, Err: err}
	}
	return body, nil
}
