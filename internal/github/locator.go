package github

import (
	"fmt"
	"net/url"
	"strings"
)

// Locator identifies a repository, optionally pinned to a branch and a
// subdirectory within it.
type Locator struct {
	Owner   string
	Name    string
	Branch  string
	Subpath string
}

// String returns the owner/name form of the locator.
func (l Locator) String() string {
	return l.Owner + "/" + l.Name
}

// Parse extracts a Locator from a GitHub repository URL. Accepted forms:
//
//	https://github.com/owner/repo
//	https://github.com/owner/repo.git
//	https://github.com/owner/repo/tree/branch
//	https://github.com/owner/repo/tree/branch/sub/dir
//
// URLs on any other host are rejected.
func Parse(rawURL string) (Locator, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Locator{}, fmt.Errorf("invalid repository URL: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "github.com" {
		return Locator{}, fmt.Errorf("only github.com repositories are supported, got host %q", u.Host)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Locator{}, fmt.Errorf("repository URL must include owner and name: %q", rawURL)
	}

	loc := Locator{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}

	// /tree/<branch>[/<subpath...>] pins a branch and optional subdirectory.
	if len(parts) >= 4 && parts[2] == "tree" {
		loc.Branch = parts[3]
		if len(parts) > 4 {
			loc.Subpath = strings.Join(parts[4:], "/")
		}
	}

	return loc, nil
}
