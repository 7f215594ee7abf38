package main

import (
	"strings"
	"testing"
)

func TestParseLoginResponse(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantToken string
		wantName  string
		wantErr   bool
	}{
		{
			name:      "valid response",
			body:      `{"token":"signed-token","user":{"full_name":"Administrator"}}`,
			wantToken: "signed-token",
			wantName:  "Administrator",
		},
		{
			name:    "malformed json",
			body:    `<html>502 Bad Gateway</html>`,
			wantErr: true,
		},
		{
			name:    "missing token",
			body:    `{"user":{"full_name":"Administrator"}}`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, fullName, err := parseLoginResponse(strings.NewReader(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got token=%q", token)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if token != tt.wantToken {
				t.Errorf("Expected token %q, got %q", tt.wantToken, token)
			}
			if fullName != tt.wantName {
				t.Errorf("Expected name %q, got %q", tt.wantName, fullName)
			}
		})
	}
}
