package catalog

import "github.com/pkg/errors"

var ErrMovieNotFound = errors.New("movie not found")
