// Package github locates GitHub repositories from user-supplied URLs and
// fetches their source archives.
//
// Only github.com URLs are accepted. Archives are downloaded as zipballs
// from codeload.github.com; when no branch is named, main is tried first
// and then master.
package github
