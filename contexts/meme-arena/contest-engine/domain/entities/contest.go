package entities

import (
	"regexp"
	"strings"
	"time"
)

type ContestStatus string

const (
	ContestStatusOpen   ContestStatus = "open"
	ContestStatusVoting ContestStatus = "voting"
	ContestStatusClosed ContestStatus = "closed"
)

// DefaultSubmissionCap applies when an admin opens a contest without one.
const DefaultSubmissionCap = 10

type Contest struct {
	ContestID           string
	Title               string
	Status              ContestStatus
	SubmissionCap       int
	SubmissionsDeadline *time.Time
	VotingDeadline      *time.Time
	CreatedAt           time.Time
}

// IsActive reports whether the contest occupies the single-active slot.
func (c Contest) IsActive() bool {
	return c.Status == ContestStatusOpen || c.Status == ContestStatusVoting
}

type Entry struct {
	EntryID         string
	ContestID       string
	MemeID          string
	SubmitterHandle string
	CreatedAt       time.Time
}

type Vote struct {
	VoteID      string
	ContestID   string
	EntryID     string
	VoterHandle string
	CreatedAt   time.Time
}

type Winner struct {
	WinnerID     string
	ContestID    string
	EntryID      string
	MemeID       string
	WinnerHandle string
	WonAt        time.Time
}

// MemeProjection is the read-side view of the meme store that entries and
// winners carry into API responses.
type MemeProjection struct {
	MemeID string
	Handle string
	ImgURL string
}

var voterHandlePattern = regexp.MustCompile(`^[a-z0-9._-]+$`)

// NormalizeHandle strips leading @ signs, trims whitespace and lowercases.
// "@Alice" and "alice" identify the same participant.
func NormalizeHandle(raw string) string {
	handle := strings.TrimSpace(raw)
	handle = strings.TrimLeft(handle, "@")
	return strings.ToLower(strings.TrimSpace(handle))
}

// IsValidVoterHandle constrains normalized voter handles to the restricted
// character set with a 40 character ceiling.
func IsValidVoterHandle(handle string) bool {
	return handle != "" && len(handle) <= 40 && voterHandlePattern.MatchString(handle)
}
