package domain

import "errors"

var ErrUserExists = errors.New("username already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidPassword = errors.New("invalid password")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateSubmission marks a write suppressed by the idempotency
// checker: the same submission was already accepted, nothing was persisted.
var ErrDuplicateSubmission = errors.New("duplicate submission")
