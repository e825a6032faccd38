package common

import "testing"

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Mover", true},
		{"_tmp2", true},
		{"a", true},
		{"", false},
		{"2fast", false},
		{"has space", false},
		{"dash-ed", false},
	}

	for _, tt := range tests {
		if got := IsValidIdentifier(tt.input); got != tt.want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSliceFuncs(t *testing.T) {
	nums := []int{1, 2, 3, 4}

	if !Contains(nums, 3) || Contains(nums, 5) {
		t.Error("Contains mismatch")
	}

	doubled := Map(nums, func(x int) int { return x * 2 })
	if len(doubled) != 4 || doubled[3] != 8 {
		t.Errorf("Map() = %v", doubled)
	}

	evens := Filter(nums, func(x int) bool { return x%2 == 0 })
	if len(evens) != 2 || evens[0] != 2 || evens[1] != 4 {
		t.Errorf("Filter() = %v", evens)
	}

	if Filter(nums, func(int) bool { return false }) != nil {
		t.Error("Filter() with no matches should be empty")
	}
}
