package http

import "time"

// ErrorResponse is the shared error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

type MemeItem struct {
	ID        string         `json:"id"`
	Handle    string         `json:"handle"`
	ImgURL    string         `json:"img_url"`
	Source    string         `json:"source"`
	Reactions map[string]int `json:"reactions"`
	CreatedAt time.Time      `json:"created_at"`
}

type FeedResponse struct {
	Items []MemeItem `json:"items"`
}

type SubmitMemeRequest struct {
	Handle string `json:"handle"`
	ImgURL string `json:"imgUrl"`
}

type SubmitMemeResponse struct {
	OK        bool      `json:"ok"`
	Meme      *MemeItem `json:"meme,omitempty"`
	Duplicate bool      `json:"duplicate,omitempty"`
}

type UploadMemeRequest struct {
	Handle      string `json:"handle"`
	ImageBase64 string `json:"imageBase64"`
}

type UploadMemeResponse struct {
	OK        bool   `json:"ok"`
	URL       string `json:"url"`
	MemeID    string `json:"meme_id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

type ReactRequest struct {
	MemeID   string `json:"memeId"`
	Reaction string `json:"reaction"`
}

type ReactResponse struct {
	OK        bool           `json:"ok"`
	Reactions map[string]int `json:"reactions"`
}
