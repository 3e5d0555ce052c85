package linkrepo

import "errors"

var ErrAlreadyExists = errors.New("link already exists")
