package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"WebApplication", []string{"Web", "Application"}},
		{"webApp", []string{"web", "App"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"PaymentsAPI", []string{"Payments", "API"}},
		{"iOSApp", []string{"i", "OS", "App"}},
		{"Web2App", []string{"Web", "2", "App"}},
		{"mobile_banking-app", []string{"mobile", "banking", "app"}},
		{"Database", []string{"Database"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitWords(tt.input))
		})
	}
}

func TestToLabelAndAlias(t *testing.T) {
	assert.Equal(t, "Web Application", ToLabel("WebApplication"))
	assert.Equal(t, "web-application", ToAlias("WebApplication"))
	assert.Equal(t, "Mobile Banking App", ToLabel("MobileBankingApp"))
	assert.Equal(t, "http-server", ToAlias("HTTPServer"))
}

func TestNamingDeterminism(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		name := rapid.StringMatching(`[A-Z][a-zA-Z0-9]{0,20}`).Draw(r, "name")

		if ToAlias(name) != ToAlias(name) || ToLabel(name) != ToLabel(name) {
			r.Fatalf("naming is not deterministic for %q", name)
		}
		if ToAlias(name) == "" {
			r.Fatalf("alias for %q is empty", name)
		}
		if _, err := NewIdentity(ToAlias(name), ""); err != nil {
			r.Fatalf("derived alias for %q is invalid: %v", name, err)
		}
	})
}
