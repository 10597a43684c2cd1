// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// PullRequest is a normalized, merged pull request.
// It is the core domain entity of this application: only pull requests that
// have actually been merged are ever represented by it.
type PullRequest struct {
	Title                  string
	URL                    string
	CreatedAt              time.Time
	MergedAt               time.Time
	CreatedToMergedMinutes int
}
