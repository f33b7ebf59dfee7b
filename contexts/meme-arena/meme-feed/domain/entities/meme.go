package entities

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

type MemeSource string

const (
	MemeSourceURL    MemeSource = "url"
	MemeSourceUpload MemeSource = "upload"
)

// Reaction keys mirror the buttons the frontend renders.
const (
	ReactionLike = "like"
	ReactionLove = "love"
	ReactionLOL  = "lol"
	ReactionFire = "fire"
	ReactionWow  = "wow"
)

type Meme struct {
	MemeID    string
	Handle    string
	ImgURL    string
	Source    MemeSource
	Reactions map[string]int
	CreatedAt time.Time
}

var (
	handlePattern   = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)
	imagePathSuffix = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|webp|avif)$`)
)

// IsAllowedReaction reports whether key is one of the supported reactions.
func IsAllowedReaction(key string) bool {
	switch key {
	case ReactionLike, ReactionLove, ReactionLOL, ReactionFire, ReactionWow:
		return true
	default:
		return false
	}
}

// StartsWithAt reports whether the raw handle carries the leading @ the
// submission form requires.
func StartsWithAt(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "@")
}

// CleanHandle strips leading @ signs, trims and lowercases.
func CleanHandle(raw string) string {
	handle := strings.TrimSpace(raw)
	handle = strings.TrimLeft(handle, "@")
	return strings.ToLower(strings.TrimSpace(handle))
}

// IsValidHandle accepts cleaned handles of 3-30 word characters.
func IsValidHandle(handle string) bool {
	return handlePattern.MatchString(handle)
}

// NormalizeImgURL strips query and fragment from URLs whose path already names
// an image file, so signed-URL noise does not defeat deduplication. Anything
// unparseable passes through trimmed.
func NormalizeImgURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		return trimmed
	}
	if imagePathSuffix.MatchString(parsed.Path) {
		parsed.RawQuery = ""
		parsed.Fragment = ""
		return parsed.String()
	}
	parsed.Fragment = ""
	return parsed.String()
}
