package domain

import "errors"

// Storage-level sentinels shared by every repository backend.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")
)
