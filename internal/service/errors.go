package service

import "errors"

// ErrBadRequest marks malformed or incomplete request input. The REST
// layer maps it, together with the core packages' ErrInvalidInput, to
// a 400 response.
var ErrBadRequest = errors.New("bad request")
