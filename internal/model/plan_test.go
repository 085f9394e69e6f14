package model

import (
	"errors"
	"testing"
)

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Plan
		wantErr error
	}{
		{"free", "free", PlanFree, nil},
		{"starter", "starter", PlanStarter, nil},
		{"professional", "professional", PlanProfessional, nil},
		{"enterprise", "enterprise", PlanEnterprise, nil},
		{"empty", "", "", ErrUnknownPlan},
		{"unknown", "platinum", "", ErrUnknownPlan},
		{"case_sensitive", "FREE", "", ErrUnknownPlan},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParsePlan(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected error %v, got %v", test.wantErr, err)
			}
			if got != test.want {
				t.Errorf("expected plan %q, got %q", test.want, got)
			}
		})
	}
}

func TestPlanIsValid(t *testing.T) {
	for _, plan := range ValidPlans {
		if !plan.IsValid() {
			t.Errorf("expected %q to be valid", plan)
		}
	}
	if Plan("gold").IsValid() {
		t.Error("expected unknown plan to be invalid")
	}
}

func TestParseKeyType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    KeyType
		wantErr error
	}{
		{"openai", "openai", KeyTypeOpenAI, nil},
		{"sendgrid", "sendgrid", KeyTypeSendGrid, nil},
		{"ahrefs", "ahrefs", KeyTypeAhrefs, nil},
		{"empty", "", "", ErrUnknownKeyType},
		{"unknown", "stripe", "", ErrUnknownKeyType},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseKeyType(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected error %v, got %v", test.wantErr, err)
			}
			if got != test.want {
				t.Errorf("expected key type %q, got %q", test.want, got)
			}
		})
	}
}
