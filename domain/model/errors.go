package model

import "errors"

// ErrUserNotFound is reported when an email matches no user document.
var ErrUserNotFound = errors.New("user not found")
