package config

import "errors"

// ErrInvalidConfig is returned by [GetStructuredConfig] when the merged
// configuration violates a validation rule (for example, an unknown APP_ENV
// or a non-positive body limit).
var ErrInvalidConfig = errors.New("invalid configuration")
