package deepface

import "errors"

var (
	ErrExtractorUnavailable = errors.New("deepface service unavailable")
	ErrInvalidResponse      = errors.New("invalid response from deepface")
)
