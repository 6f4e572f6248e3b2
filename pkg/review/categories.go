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

import "fmt"

// Category identifies one of the four fixed review domains.
//
// The string values double as JSON keys in the review document, so they
// must never change for documents already in a workspace.
type Category string

const (
	CategoryThirdPartySoftware Category = "third_party_software"
	CategorySourceCode         Category = "source_code"
	CategoryDatasets           Category = "datasets_user_files"
	CategoryModels             Category = "models"
)

// categoryOrder is the display and aggregation order of the sections.
var categoryOrder = []Category{
	CategoryThirdPartySoftware,
	CategorySourceCode,
	CategoryDatasets,
	CategoryModels,
}

// categoryQuestions maps each category to its fixed, ordered question list.
// This is configuration data from the review template, not user-editable.
var categoryQuestions = map[Category][]string{
	CategoryThirdPartySoftware: {
		"Open-source license compliance",
		"Known vulnerabilities (CVE)",
		"Supply chain risks (typosquatting, protestware)",
		"Binary/source origin verification",
		"Malicious code insertion risk",
		"Dependency pinning & reproducibility",
	},
	CategorySourceCode: {
		"Static code analysis (bandit, semgrep)",
		"Secrets scanning",
		"Malicious code patterns",
		"Code provenance & signing",
		"Backdoors/trojans",
		"Obfuscated code",
	},
	CategoryDatasets: {
		"Data poisoning risk",
		"PII / sensitive data leakage",
		"Copyright / licensing issues",
		"Adversarial examples",
		"Dataset provenance",
		"Jailbreak prompts in dataset",
	},
	CategoryModels: {
		"Model weights integrity (hash verification)",
		"Known unsafe/refusal-bypassed models",
		"Backdoor/trojan in weights",
		"Model card completeness",
		"Unsafe fine-tuning detected",
		"Export-controlled model",
	},
}

// categoryDisplay maps each category to its report heading.
var categoryDisplay = map[Category]string{
	CategoryThirdPartySoftware: "Third-Party Software",
	CategorySourceCode:         "Source Code",
	CategoryDatasets:           "Datasets / User Files",
	CategoryModels:             "AI Models",
}

// Categories returns the four categories in section order.
// The returned slice is a copy and safe to modify.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Questions returns the fixed question list for the category, in template
// order. The returned slice is a copy and safe to modify. Unknown
// categories return nil.
func (c Category) Questions() []string {
	qs, ok := categoryQuestions[c]
	if !ok {
		return nil
	}
	out := make([]string, len(qs))
	copy(out, qs)
	return out
}

// Display returns the human-readable section heading.
func (c Category) Display() string {
	if d, ok := categoryDisplay[c]; ok {
		return d
	}
	return string(c)
}

// Valid reports whether c is one of the four fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryQuestions[c]
	return ok
}

// ParseCategory parses a category key (the JSON document key form).
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (want one of %v)", s, categoryOrder)
	}
	return c, nil
}
