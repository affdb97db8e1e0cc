package validation

import "testing"

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"acceptable", "secret123", true},
		{"exactly minimum length", "abcdef12", true},
		{"too short", "ab1", false},
		{"letters only", "abcdefgh", false},
		{"digits only", "12345678", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := CheckPassword(tc.password)
			if ok != tc.ok {
				t.Errorf("CheckPassword(%q) = %v, want %v", tc.password, ok, tc.ok)
			}
			if !ok && reason == "" {
				t.Error("rejection must carry a reason")
			}
		})
	}
}
