package myerrors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("data tidak lengkap")
	ErrEmailRegistered    = errors.New("email sudah terdaftar")
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrDriverNotFound     = errors.New("driver tidak ditemukan")
)

// Every token or header failure wraps ErrInvalidToken; the HTTP layer only
// ever shows that one message.
var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrMissingToken          = fmt.Errorf("%w: missing authorization header", ErrInvalidToken)
	ErrMalformedHeader       = fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	ErrTokenMalformed        = fmt.Errorf("%w: malformed token", ErrInvalidToken)
	ErrTokenSignatureInvalid = fmt.Errorf("%w: signature is invalid", ErrInvalidToken)
	ErrTokenExpired          = fmt.Errorf("%w: token is expired", ErrInvalidToken)
)
