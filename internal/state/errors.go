package state

import "errors"

// ErrNoChange lets an Update callback abort without committing or reporting an error
var ErrNoChange = errors.New("no change")
