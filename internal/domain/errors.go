package domain

import "errors"

// Catalog lookup errors
var (
	ErrHeroNotFound  = errors.New("hero not found")
	ErrBuildNotFound = errors.New("build not found")
)

// Record conversion errors
var (
	ErrInvalidHero  = errors.New("invalid hero record")
	ErrInvalidBuild = errors.New("invalid build record")
)
