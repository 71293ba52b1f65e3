package util

import (
	"errors"
	"fmt"
)

var (
	ErrExtraction        = errors.New("pdf text extraction failed")
	ErrNoExtractableText = fmt.Errorf("%w: no extractable text found in PDF", ErrExtraction)

	ErrAuthentication    = errors.New("generation credential missing or rejected")
	ErrRateLimited       = errors.New("provider rate limited")
	ErrTransient         = errors.New("transient provider error")
	ErrInvalidModel      = errors.New("model not recognized by provider")
	ErrMalformedResponse = errors.New("model response has no identifiable title")
)
