package service

import "errors"

var (
	ErrFrameNotFound     = errors.New("frame not found")
	ErrFrameConflict     = errors.New("frame with this name already exists")
	ErrFrameChanged      = errors.New("frame hypotheses changed concurrently, retry")
	ErrEvidenceNotFound  = errors.New("evidence not found")
	ErrInvalidEvidence   = errors.New("invalid evidence")
	ErrUnknownHypothesis = errors.New("unknown hypothesis")
	ErrNoEvidence        = errors.New("frame has no evidence to assess")
)
