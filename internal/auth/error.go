package auth

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountDisabled = errors.New("account disabled")
var ErrAccountExpired = errors.New("account expired")
