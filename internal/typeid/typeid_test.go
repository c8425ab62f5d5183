package typeid

import "testing"

func TestNewElementIDValidates(t *testing.T) {
	id := NewElementID()
	if err := Validate(id, PrefixElement); err != nil {
		t.Fatalf("Validate(%q): %v", id, err)
	}
	if err := Validate(id, PrefixSession); err == nil {
		t.Errorf("Validate(%q, %q) should fail", id, PrefixSession)
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewElementID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d ids", id, i)
		}
		seen[id] = true
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate("not an id", PrefixElement); err == nil {
		t.Error("expected error")
	}
}
