package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidRelationType = errors.New("invalid relation type")
)
