package service

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotLoaded          = errors.New("order data is not loaded yet")
	ErrInvalidQuery       = errors.New("invalid search query")
	ErrInvalidCategory    = errors.New("invalid search category")
	ErrBackendUnavailable = errors.New("failed to load data from backend")
)
