package semver

import "testing"

func TestIsNewer(t *testing.T) {
	tests := []struct {
		candidate string
		current   string
		want      bool
	}{
		{"1.0.1", "1.0.0", true},
		{"1.0.0", "1.0.0", false},
		{"0.9.0", "1.0.0", false},
		{"1.1", "1.0.0", true}, // shorter sequence is zero-padded
		{"2.0.0", "10.0.0", false},
		{"1.0.0.1", "1.0.0", true},
		{"1.0", "1.0.0", false},
		{"v1.2.0", "1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.candidate+" vs "+tt.current, func(t *testing.T) {
			if got := IsNewer(tt.candidate, tt.current); got != tt.want {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.candidate, tt.current, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v1.0.0", "1.0.0"},
		{"V2.3.4", "2.3.4"},
		{"release/1.0.0", "1.0.0"},
		{"version/2.1.0", "2.1.0"},
		{"wire-3.0.1", "3.0.1"},
		{"1.0.0", "1.0.0"},
		{"1.0.0-beta", "1.0.0-beta"}, // remainder not numeric-dotted
		{"main", "main"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"v1.0.0", "release/1.0.0", "version/v2.0.0", "wire-3.0.1",
		"1.0.0-beta", "main", "", "v", "swift-collections-1.1.0",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestIsValidSemver(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1.0.0", true},
		{"v2.3.4", true},
		{"1.2", true},
		{"main", false},
		{"v1", false}, // needs at least two components
		{"1.0.0.0", false},
		{"1.a.0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidSemver(tt.in); got != tt.want {
				t.Errorf("IsValidSemver(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsPrerelease(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2.0.0-RC1", true},
		{"1.0.0", false},
		{"1.0.0-beta.2", true},
		{"3.0.0.alpha", true},
		{"1.0.0-SNAPSHOT", true},
		{"1.0.0-dev", true},
		{"5.9.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsPrerelease(tt.in); got != tt.want {
				t.Errorf("IsPrerelease(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.0.1", -1},
		{"1.0-beta", "1.0", 0}, // "0-beta" component dropped, rest zero-padded
		{"1.0-beta", "1", 0},
		{"1.0-beta", "1.1", -1},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
