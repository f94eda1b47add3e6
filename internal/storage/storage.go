package storage

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")

	ErrAssessmentNotFound     = errors.New("assessment not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
)
