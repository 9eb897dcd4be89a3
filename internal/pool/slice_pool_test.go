package pool

import "testing"

func TestGetStringSliceLength(t *testing.T) {
	s, cleanup := GetStringSlice(5)
	defer cleanup()

	if len(s) != 5 {
		t.Fatalf("len = %d, want 5", len(s))
	}
}

func TestGetStringSliceReuse(t *testing.T) {
	s, cleanup := GetStringSlice(3)
	s[0], s[1], s[2] = "a", "b", "c"
	cleanup()

	s2, cleanup2 := GetStringSlice(2)
	defer cleanup2()

	if len(s2) != 2 {
		t.Fatalf("len = %d, want 2", len(s2))
	}
}
