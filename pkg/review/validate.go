// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package review

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/aimcr/pkg/validation"
)

// reviewValidate is the validator instance for review datatypes.
// Initialized in init() with custom validators.
var reviewValidate *validator.Validate

func init() {
	reviewValidate = validator.New()
	_ = reviewValidate.RegisterValidation("projectid", validateProjectID)
}

// validateProjectID bridges the shared project-ID rule into validator
// struct tags. Project IDs end up in filenames and git paths, so the
// rule also guards against path traversal.
func validateProjectID(fl validator.FieldLevel) bool {
	return validation.ValidateProjectID(fl.Field().String()) == nil
}

// Validate checks that the document is complete enough to submit.
//
// A draft may be saved in any state; submission requires identified
// metadata and well-formed check scores. Aggregation itself never calls
// this: malformed data degrades gracefully during scoring instead.
func (d *Document) Validate() error {
	if err := reviewValidate.Struct(d.Metadata); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	for _, cat := range Categories() {
		for i, a := range d.Artifacts(cat) {
			if err := reviewValidate.Struct(a); err != nil {
				return fmt.Errorf("%s artifact %d (%s): %w", cat, i+1, a.DisplayName(), err)
			}
		}
	}
	return nil
}
