package absence

import "errors"

var (
	ErrLookupFailed = errors.New("absence lookup failed")
)
