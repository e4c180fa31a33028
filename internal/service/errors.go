package service

import (
	"errors"

	"manager_system/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccessDenied       = errors.New("access denied")
	ErrTokenInvalid       = errors.New("refresh token is not the current one")
	ErrUnauthorized       = errors.New("you do not have permission to perform this action")
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")

	// Token verification failures are shared with utils so callers can
	// match them with errors.Is at either layer.
	ErrTokenExpired     = utils.ErrTokenExpired
	ErrInvalidSignature = utils.ErrInvalidSignature
	ErrTokenMalformed   = utils.ErrTokenMalformed
)
