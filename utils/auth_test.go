package utils

import "testing"

func TestCheckPermission(t *testing.T) {
	tests := []struct {
		name        string
		roles       []string
		adminRoleID string
		want        bool
	}{
		{"admin", []string{"10", "20"}, "20", true},
		{"not admin", []string{"10", "30"}, "20", false},
		{"no roles", nil, "20", false},
		{"empty admin id", []string{""}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPermission(tt.roles, tt.adminRoleID); got != tt.want {
				t.Errorf("CheckPermission(%v, %q) = %v, want %v", tt.roles, tt.adminRoleID, got, tt.want)
			}
		})
	}
}
