package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultCodeloadURL = "https://codeload.github.com"

// Fetcher downloads repository zipballs from codeload.
type Fetcher struct {
	baseURL string
	httpCli *http.Client
}

// NewFetcher creates a Fetcher with a 30 second request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		baseURL: defaultCodeloadURL,
		httpCli: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchArchive downloads the zip archive for the locator and returns its
// bytes together with the branch that resolved. When the locator names no
// branch, main is tried and then master; the error for a repository that
// matches neither names the last branch attempted.
func (f *Fetcher) FetchArchive(ctx context.Context, loc Locator) ([]byte, string, error) {
	branches := candidateBranches(loc.Branch)

	var lastErr error
	for _, branch := range branches {
		data, err := f.fetchBranch(ctx, loc, branch)
		if err == nil {
			logrus.WithFields(logrus.Fields{
				"repository": loc.String(),
				"branch":     branch,
				"bytes":      len(data),
			}).Debug("downloaded repository archive")
			return data, branch, nil
		}
		lastErr = err
	}
	return nil, "", fmt.Errorf("cannot download %s: %w", loc.String(), lastErr)
}

func (f *Fetcher) fetchBranch(ctx context.Context, loc Locator, branch string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s/zip/refs/heads/%s", f.baseURL, loc.Owner, loc.Name, branch)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "loupe")

	resp, err := f.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching branch %s: %w", branch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("branch %s: status %d", branch, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading archive for branch %s: %w", branch, err)
	}
	return data, nil
}

// candidateBranches returns the branches to try in order, without
// duplicates. An explicit branch is tried first.
func candidateBranches(explicit string) []string {
	candidates := []string{"main", "master"}
	if explicit != "" {
		candidates = append([]string{explicit}, candidates...)
	}

	var out []string
	seen := make(map[string]bool)
	for _, b := range candidates {
		if !seen[b] {
			out = append(out, b)
			seen[b] = true
		}
	}
	return out
}
