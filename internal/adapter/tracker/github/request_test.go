package github

import "testing"

func TestParseNextPageURL(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{
			"next present",
			`<https://api.github.com/repos/o/r/issues?page=2>; rel="next", <https://api.github.com/repos/o/r/issues?page=5>; rel="last"`,
			"https://api.github.com/repos/o/r/issues?page=2",
		},
		{
			"no next link",
			`<https://api.github.com/repos/o/r/issues?page=1>; rel="prev"`,
			"",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseNextPageURL(tc.header); got != tc.want {
				t.Errorf("parseNextPageURL(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}

func TestIsValidPaginationURL(t *testing.T) {
	base := "https://api.github.com"
	if !isValidPaginationURL(base, "https://api.github.com/repos/o/r/issues?page=2") {
		t.Error("expected same-host URL to be valid")
	}
	if isValidPaginationURL(base, "https://evil.example.com/steal") {
		t.Error("expected cross-host URL to be rejected")
	}
	if isValidPaginationURL(base, "http://api.github.com/repos/o/r/issues?page=2") {
		t.Error("expected scheme downgrade to be rejected")
	}
}

func TestValidatePathSegment(t *testing.T) {
	if err := validatePathSegment("my-org", "owner"); err != nil {
		t.Errorf("expected valid owner, got error: %v", err)
	}
	if err := validatePathSegment("../etc", "owner"); err == nil {
		t.Error("expected path traversal to be rejected")
	}
	if err := validatePathSegment("", "owner"); err == nil {
		t.Error("expected empty segment to be rejected")
	}
}
