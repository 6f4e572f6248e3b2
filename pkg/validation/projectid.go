// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for security-critical operations.
//
// This package contains validators for user-provided inputs that are used in
// file paths, git operations, or subprocess calls. Using these validators
// prevents injection attacks (command injection, path traversal).
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// projectIDPattern matches valid project identifiers.
// Allows: letters, digits, hyphens and underscores after the first char.
// Max length: 32 characters (covers grant and proposal numbering schemes).
var projectIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-]{0,31}$`)

// ValidateProjectID validates a project identifier before it is used in
// workspace paths and git commit messages.
//
// Valid project IDs:
//   - 1-32 characters
//   - Letters A-Z a-z, digits 0-9
//   - Hyphens (-) and underscores (_) after the first character
//
// Returns an error if the project ID is invalid.
//
// Example:
//
//	if err := validation.ValidateProjectID(id); err != nil {
//	    return fmt.Errorf("invalid project id: %w", err)
//	}
//	// Safe to use in a filesystem path
func ValidateProjectID(id string) error {
	if id == "" {
		return fmt.Errorf("project id cannot be empty")
	}

	if !projectIDPattern.MatchString(id) {
		return fmt.Errorf("invalid project id format: %q (must be 1-32 alphanumeric chars, hyphens, or underscores)", id)
	}

	return nil
}

// SanitizeProjectID normalizes and validates a project identifier.
// Returns the trimmed ID if valid, or an error if invalid.
//
// Use this when you need both validation and normalization:
//
//	safeID, err := validation.SanitizeProjectID(userInput)
//	if err != nil {
//	    return err
//	}
//	// safeID is trimmed and validated
func SanitizeProjectID(id string) (string, error) {
	normalized := strings.TrimSpace(id)
	if err := ValidateProjectID(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// ValidateFolderName validates a submission folder name of the form
// AIMCR-<project>-<dd-mm-yyyy>. Used before joining user-supplied folder
// names onto the workspace path.
var folderPattern = regexp.MustCompile(`^AIMCR-[A-Za-z0-9][A-Za-z0-9_\-]{0,31}-\d{2}-\d{2}-\d{4}$`)

func ValidateFolderName(name string) error {
	if !folderPattern.MatchString(name) {
		return fmt.Errorf("invalid submission folder name: %q", name)
	}
	return nil
}
