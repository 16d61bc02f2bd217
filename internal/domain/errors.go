package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrProductNotFound   = errors.New("product not found in stock")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUpstreamOCR       = errors.New("ocr service failure")
	ErrNoTextFound       = errors.New("no text found in image")
)
