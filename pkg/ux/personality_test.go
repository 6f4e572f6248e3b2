// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"os"
	"testing"
)

// =============================================================================
// GetPersonality / SetPersonality Tests
// =============================================================================

func TestSetPersonality_AndGet(t *testing.T) {
	// Save original personality
	orig := GetPersonality()
	defer SetPersonality(orig)

	custom := Personality{
		Level:    PersonalityMinimal,
		Theme:    "custom",
		ShowTips: false,
	}
	SetPersonality(custom)

	retrieved := GetPersonality()
	if retrieved.Level != PersonalityMinimal {
		t.Errorf("expected level %v, got %v", PersonalityMinimal, retrieved.Level)
	}
	if retrieved.Theme != "custom" {
		t.Errorf("expected theme 'custom', got %q", retrieved.Theme)
	}
	if retrieved.ShowTips != false {
		t.Errorf("expected ShowTips false, got %v", retrieved.ShowTips)
	}
}

func TestSetPersonalityLevel(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	levels := []PersonalityLevel{
		PersonalityFull,
		PersonalityStandard,
		PersonalityMinimal,
		PersonalityMachine,
	}
	for _, level := range levels {
		SetPersonalityLevel(level)
		if GetPersonality().Level != level {
			t.Errorf("expected %v, got %v", level, GetPersonality().Level)
		}
	}
}

// =============================================================================
// ParsePersonalityLevel Tests
// =============================================================================

func TestParsePersonalityLevel(t *testing.T) {
	tests := []struct {
		inputs []string
		want   PersonalityLevel
	}{
		{[]string{"full", "Full", "FULL", "f"}, PersonalityFull},
		{[]string{"standard", "std", "s"}, PersonalityStandard},
		{[]string{"minimal", "min", "m"}, PersonalityMinimal},
		{[]string{"machine", "quiet", "q"}, PersonalityMachine},
		{[]string{"", "bogus", "loud"}, PersonalityStandard},
	}
	for _, tt := range tests {
		for _, input := range tt.inputs {
			if got := ParsePersonalityLevel(input); got != tt.want {
				t.Errorf("ParsePersonalityLevel(%q) = %v, want %v", input, got, tt.want)
			}
		}
	}
}

// =============================================================================
// InitPersonality Tests
// =============================================================================

func TestInitPersonality_EnvOverride(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	os.Setenv("AIMCR_PERSONALITY", "machine")
	defer os.Unsetenv("AIMCR_PERSONALITY")

	InitPersonality()

	if GetPersonality().Level != PersonalityMachine {
		t.Errorf("expected PersonalityMachine from env, got %v", GetPersonality().Level)
	}
}

// =============================================================================
// Helper Predicate Tests
// =============================================================================

func TestShouldShowProgress(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)
	if !ShouldShowProgress() {
		t.Error("expected progress enabled in full mode")
	}

	SetPersonalityLevel(PersonalityMachine)
	if ShouldShowProgress() {
		t.Error("expected progress disabled in machine mode")
	}
}

func TestShouldShowColors(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)
	if ShouldShowColors() {
		t.Error("expected colors disabled in machine mode")
	}
}

func TestDefaultPersonality(t *testing.T) {
	p := DefaultPersonality()
	if p.Level != PersonalityFull {
		t.Errorf("expected PersonalityFull default, got %v", p.Level)
	}
	if !p.ShowTips {
		t.Error("expected ShowTips default true")
	}
}
