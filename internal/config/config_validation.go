// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// validate checks that the final merged [StructuredConfig] satisfies the
// `validate` struct tags before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping
// [ErrInvalidConfig] that lists every failing field otherwise.
func (cfg *StructuredConfig) validate() error {
	if err := structValidator.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}
