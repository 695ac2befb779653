// Package repo turns a downloaded repository archive into reviewed files:
// it unpacks the zipball into a temporary workspace, summarizes the tree,
// selects reviewable files, and drives the review pipeline over each one,
// isolating per-file failures so a single bad file never aborts the batch.
package repo
