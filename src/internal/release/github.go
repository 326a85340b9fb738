package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/node"
)

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Release is the published release metadata of a GitHub repository.
type Release struct {
	TagName     string  `json:"tag_name"`
	Name        string  `json:"name"`
	HTMLURL     string  `json:"html_url"`
	Body        string  `json:"body"`
	PublishedAt string  `json:"published_at"`
	Prerelease  bool    `json:"prerelease"`
	Assets      []Asset `json:"assets"`
}

// Version parses the release tag as a version number.
func (r *Release) Version() (node.Version, error) {
	return node.Parse(r.TagName)
}

// LatestRelease fetches the newest published release of "owner/name".
// A repository without releases yields nil, not an error.
func (c *Client) LatestRelease(ctx context.Context, repoSlug string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBaseURL, repoSlug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &backend.ErrNetwork{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &backend.ErrNetwork{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &backend.ErrNetwork{URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &backend.ErrNetwork{URL: url, Err: err}
	}

	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, &backend.ErrParseFailed{Source: repoSlug + " release", Detail: err.Error()}
	}
	return &rel, nil
}

// AppRepo is this application's release repository.
const AppRepo = "nvmux/nvmux"

// AppUpdate reports a newer release of this application, or nil when
// up to date. Non-release builds ("dev") never report an update.
func (c *Client) AppUpdate(ctx context.Context, currentVersion string) (*backend.Update, error) {
	current, err := node.Parse(currentVersion)
	if err != nil || current.IsAlias() {
		return nil, nil
	}
	return c.ToolUpdate(ctx, AppRepo, current)
}

// ToolUpdate compares the installed tool version against the latest
// release of repoSlug. Nil means checked and current; an error means
// the check itself failed. Versions that cannot be compared (dev
// builds, missing tags) report no update.
func (c *Client) ToolUpdate(ctx context.Context, repoSlug string, current node.Version) (*backend.Update, error) {
	rel, err := c.LatestRelease(ctx, repoSlug)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, nil
	}

	latest, err := rel.Version()
	if err != nil || latest.IsAlias() || current.IsAlias() {
		return nil, nil
	}

	cmp, err := latest.Compare(current)
	if err != nil || cmp <= 0 {
		return nil, nil
	}
	return &backend.Update{Latest: latest, URL: rel.HTMLURL}, nil
}
