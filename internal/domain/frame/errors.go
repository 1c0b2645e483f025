package frame

import "errors"

// ErrShape reports a row whose width does not match the frame schema.
var ErrShape = errors.New("frame shape mismatch")
