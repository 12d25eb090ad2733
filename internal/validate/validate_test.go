package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := map[string]struct {
		email string
		want  bool
	}{
		"gmail address":        {"someone@gmail.com", true},
		"uppercase domain":     {"someone@GMAIL.com", true},
		"proton address":       {"a.b+c@protonmail.com", true},
		"unknown provider":     {"someone@example.com", false},
		"missing at":           {"someonegmail.com", false},
		"missing local part":   {"@gmail.com", false},
		"empty":                {"", false},
		"subdomain of allowed": {"x@mail.gmail.com", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Email(tc.email); got != tc.want {
				t.Fatalf("Email(%q) = %v, want %v", tc.email, got, tc.want)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	tests := map[string]struct {
		phone string
		want  bool
	}{
		"local format":       {"03001234567", true},
		"with country code":  {"+923001234567", true},
		"dashed":             {"0300-1234567", true},
		"spaced prefix":      {"+92 3001234567", true},
		"too short":          {"0300123456", false},
		"landline":           {"0211234567", false},
		"letters":            {"03001234abc", false},
		"empty":              {"", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Phone(tc.phone); got != tc.want {
				t.Fatalf("Phone(%q) = %v, want %v", tc.phone, got, tc.want)
			}
		})
	}
}

func TestProductID(t *testing.T) {
	tests := map[string]struct {
		id   string
		want bool
	}{
		"six digits":          {"100001", true},
		"surrounding spaces":  {" 100001 ", true},
		"five digits":         {"10001", false},
		"seven digits":        {"1000001", false},
		"letters":             {"10000a", false},
		"empty":               {"", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ProductID(tc.id); got != tc.want {
				t.Fatalf("ProductID(%q) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}
