package activityrepo

import "errors"

var ErrAlreadyExists = errors.New("activity already exists")
