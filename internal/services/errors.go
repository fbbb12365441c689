package services

import "errors"

var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrImageNotFound      = errors.New("image not found")
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrInvalidQuote       = errors.New("invalid quote")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyQuery         = errors.New("empty geocode query")
)
