package http

import "time"

// ErrorResponse is the uniform failure envelope: a single error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

type ContestPayload struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Status              string     `json:"status"`
	SubmissionCap       int        `json:"submission_cap"`
	SubmissionsDeadline *time.Time `json:"submissions_deadline,omitempty"`
	VotingDeadline      *time.Time `json:"voting_deadline,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type MemePayload struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	ImgURL string `json:"img_url"`
}

type ActiveContestResponse struct {
	Contest *ContestPayload `json:"contest"`
}

type OpenContestRequest struct {
	Title               string     `json:"title"`
	SubmissionCap       int        `json:"submission_cap,omitempty"`
	SubmissionsDeadline *time.Time `json:"submissions_deadline,omitempty"`
	VotingDeadline      *time.Time `json:"voting_deadline,omitempty"`
}

type ContestMutationResponse struct {
	OK      bool           `json:"ok"`
	Contest ContestPayload `json:"contest"`
}

type StartVotingRequest struct {
	ContestID string `json:"contest_id"`
}

type CloseContestRequest struct {
	ContestID string `json:"contest_id"`
}

type WinnerPayload struct {
	WinnerHandle string      `json:"winner_handle"`
	Meme         MemePayload `json:"meme"`
	WonAt        time.Time   `json:"won_at"`
}

type CloseContestResponse struct {
	OK     bool           `json:"ok"`
	Closed bool           `json:"closed"`
	Winner *WinnerPayload `json:"winner"`
}

type SubmitEntryRequest struct {
	ContestID string `json:"contest_id,omitempty"`
	Handle    string `json:"handle"`
	ImgURL    string `json:"imgUrl,omitempty"`
	MemeID    string `json:"meme_id,omitempty"`
}

type SubmitEntryResponse struct {
	OK        bool   `json:"ok"`
	EntryID   string `json:"entry_id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

type CastVoteRequest struct {
	EntryID     string `json:"entry_id"`
	VoterHandle string `json:"voter_handle"`
}

type CastVoteResponse struct {
	OK        bool `json:"ok"`
	Duplicate bool `json:"duplicate,omitempty"`
}

type EntryItem struct {
	ID              string      `json:"id"`
	ContestID       string      `json:"contest_id"`
	MemeID          string      `json:"meme_id"`
	SubmitterHandle string      `json:"submitter_handle"`
	CreatedAt       time.Time   `json:"created_at"`
	Meme            MemePayload `json:"memes"`
}

type EntriesResponse struct {
	Items []EntryItem `json:"items"`
}

type LeaderboardItem struct {
	ID              string      `json:"id"`
	SubmitterHandle string      `json:"submitter_handle"`
	Votes           int         `json:"votes"`
	Meme            MemePayload `json:"memes"`
}

type LeaderboardResponse struct {
	OK        bool              `json:"ok"`
	ContestID string            `json:"contest_id"`
	Items     []LeaderboardItem `json:"items"`
}

type RankedWinnerItem struct {
	Rank         int         `json:"rank"`
	WinnerHandle string      `json:"winner_handle"`
	Meme         MemePayload `json:"meme"`
	WonAt        time.Time   `json:"won_at"`
}

type WinnersResponse struct {
	Contest *ContestPayload    `json:"contest"`
	Winners []RankedWinnerItem `json:"winners"`
}
