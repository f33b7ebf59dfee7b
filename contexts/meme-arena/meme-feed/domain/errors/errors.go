package errors

import "errors"

var (
	ErrInvalidHandle    = errors.New("invalid handle")
	ErrInvalidImgURL    = errors.New("image url required")
	ErrInvalidImageData = errors.New("bad image data")
	ErrImageTooLarge    = errors.New("image too large")
	ErrInvalidReaction  = errors.New("unsupported reaction")

	ErrMemeNotFound  = errors.New("meme not found")
	ErrDuplicateMeme = errors.New("meme already exists for handle and url")
)
