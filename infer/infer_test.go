package infer

import (
	"testing"

	"github.com/colinmarc/ccf/format"
)

func TestTypeAllInt(t *testing.T) {
	if got := Type([]string{"30", "", "42", "7", "-3"}); got != format.Int32 {
		t.Fatalf("Type() = %v, want Int32", got)
	}
}

func TestTypeAllEmpty(t *testing.T) {
	if got := Type([]string{"", "", ""}); got != format.Int32 {
		t.Fatalf("Type() = %v, want Int32 (vacuous truth)", got)
	}
}

func TestTypeEmptySlice(t *testing.T) {
	if got := Type(nil); got != format.Int32 {
		t.Fatalf("Type() = %v, want Int32", got)
	}
}

func TestTypeFloat(t *testing.T) {
	if got := Type([]string{"1.5", "2", "", "-3.25"}); got != format.Float64 {
		t.Fatalf("Type() = %v, want Float64", got)
	}
}

func TestTypeString(t *testing.T) {
	if got := Type([]string{"alice", "", "bob", "carol"}); got != format.String {
		t.Fatalf("Type() = %v, want String", got)
	}
}

func TestTypeIntOverflowFallsToFloat(t *testing.T) {
	// Beyond 32-bit signed range, but a valid int64/float.
	if got := Type([]string{"1", "99999999999"}); got != format.Float64 {
		t.Fatalf("Type() = %v, want Float64", got)
	}
}

func TestTypeFloatOverflowFallsToString(t *testing.T) {
	if got := Type([]string{"1.5", "1e999999"}); got != format.String {
		t.Fatalf("Type() = %v, want String", got)
	}
}

func TestTypePromotionMonotonicity(t *testing.T) {
	// Invariant 8: promoting an Int32-inferred column by adding a
	// non-integer numeric row yields Float64; adding a non-numeric row
	// on top of that yields String.
	ints := []string{"1", "2", "3"}
	if got := Type(ints); got != format.Int32 {
		t.Fatalf("Type(ints) = %v, want Int32", got)
	}

	withFloat := append(append([]string{}, ints...), "1.5")
	if got := Type(withFloat); got != format.Float64 {
		t.Fatalf("Type(withFloat) = %v, want Float64", got)
	}

	withString := append(append([]string{}, withFloat...), "nope")
	if got := Type(withString); got != format.String {
		t.Fatalf("Type(withString) = %v, want String", got)
	}
}

func TestTypeRejectsUnderscoreDigits(t *testing.T) {
	// "1_000" must not be accepted as an integer lexical form.
	if got := Type([]string{"1_000"}); got != format.String {
		t.Fatalf("Type() = %v, want String", got)
	}
}

func TestTypeRejectsHex(t *testing.T) {
	if got := Type([]string{"0x10"}); got != format.String {
		t.Fatalf("Type() = %v, want String", got)
	}
}
