package analyses

import (
	"errors"

	"job-assistant/internal/shared/server/respond"
)

var (
	ErrMissingFile  = errors.New("missing upload")
	ErrUnreadable   = errors.New("upload could not be read")
	ErrCacheDecoded = errors.New("cached analysis could not be decoded")
)

const (
	ErrorCodeValidation      = respond.CodeValidation
	ErrorCodePayloadTooLarge = respond.CodePayloadTooLarge
	ErrorCodeInternal        = respond.CodeInternal
)

const missingFilesMessage = "Both resume and job description files are required."
