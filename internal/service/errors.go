package service

import "errors"

// ErrNotFound reports that a requested entity does not exist for the
// calling user.
var ErrNotFound = errors.New("not found")
