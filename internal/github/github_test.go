package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    Locator
		wantErr bool
	}{
		{
			name: "bare repository",
			url:  "https://github.com/torvalds/linux",
			want: Locator{Owner: "torvalds", Name: "linux"},
		},
		{
			name: "dot git suffix stripped",
			url:  "https://github.com/owner/repo.git",
			want: Locator{Owner: "owner", Name: "repo"},
		},
		{
			name: "tree with branch",
			url:  "https://github.com/owner/repo/tree/develop",
			want: Locator{Owner: "owner", Name: "repo", Branch: "develop"},
		},
		{
			name: "tree with branch and subpath",
			url:  "https://github.com/owner/repo/tree/main/src/pkg",
			want: Locator{Owner: "owner", Name: "repo", Branch: "main", Subpath: "src/pkg"},
		},
		{
			name: "www prefix accepted",
			url:  "https://www.github.com/owner/repo",
			want: Locator{Owner: "owner", Name: "repo"},
		},
		{
			name: "trailing slash",
			url:  "https://github.com/owner/repo/",
			want: Locator{Owner: "owner", Name: "repo"},
		},
		{
			name:    "other host rejected",
			url:     "https://gitlab.com/owner/repo",
			wantErr: true,
		},
		{
			name:    "missing repository name",
			url:     "https://github.com/owner",
			wantErr: true,
		},
		{
			name:    "empty path",
			url:     "https://github.com/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestLocatorString(t *testing.T) {
	loc := Locator{Owner: "owner", Name: "repo", Branch: "main"}
	if got := loc.String(); got != "owner/repo" {
		t.Errorf("String() = %q, want owner/repo", got)
	}
}

func TestFetchArchive_ExplicitBranch(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.Header.Get("User-Agent") != "loupe" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("zipdata"))
	}))
	defer server.Close()

	f := NewFetcher()
	f.baseURL = server.URL

	data, branch, err := f.FetchArchive(context.Background(), Locator{Owner: "o", Name: "r", Branch: "dev"})
	if err != nil {
		t.Fatalf("FetchArchive: %v", err)
	}
	if string(data) != "zipdata" {
		t.Errorf("data = %q", data)
	}
	if branch != "dev" {
		t.Errorf("branch = %q, want dev", branch)
	}
	if len(paths) != 1 || paths[0] != "/o/r/zip/refs/heads/dev" {
		t.Errorf("paths = %v", paths)
	}
}

func TestFetchArchive_DefaultBranchFallback(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/main") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("master-zip"))
	}))
	defer server.Close()

	f := NewFetcher()
	f.baseURL = server.URL

	data, branch, err := f.FetchArchive(context.Background(), Locator{Owner: "o", Name: "r"})
	if err != nil {
		t.Fatalf("FetchArchive: %v", err)
	}
	if branch != "master" {
		t.Errorf("branch = %q, want master", branch)
	}
	if string(data) != "master-zip" {
		t.Errorf("data = %q", data)
	}
	want := []string{"/o/r/zip/refs/heads/main", "/o/r/zip/refs/heads/master"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestFetchArchive_AllBranchesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewFetcher()
	f.baseURL = server.URL

	_, _, err := f.FetchArchive(context.Background(), Locator{Owner: "o", Name: "r"})
	if err == nil {
		t.Fatal("expected error when no branch resolves")
	}
	if !strings.Contains(err.Error(), "master") {
		t.Errorf("error %q should name the last attempted branch", err)
	}
	if !strings.Contains(err.Error(), "o/r") {
		t.Errorf("error %q should name the repository", err)
	}
}

func TestFetchArchive_ExplicitBranchDeduplicated(t *testing.T) {
	var count int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count++
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewFetcher()
	f.baseURL = server.URL

	// Explicit "main" must not be tried twice.
	f.FetchArchive(context.Background(), Locator{Owner: "o", Name: "r", Branch: "main"})
	if count != 2 {
		t.Errorf("made %d requests, want 2 (main, master)", count)
	}
}
