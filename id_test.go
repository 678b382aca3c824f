package kvdocs

import "testing"

func TestNewID(t *testing.T) {
	id := NewID()
	if id == "" {
		t.Fatal("NewID returned empty string")
	}
	if !IsValidID(id) {
		t.Errorf("NewID returned invalid UUID: %s", id)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestParseID(t *testing.T) {
	id := NewID()
	parsed, err := ParseID(id)
	if err != nil {
		t.Fatalf("ParseID failed: %v", err)
	}
	if parsed.String() != id {
		t.Errorf("ParseID round trip: %s != %s", parsed.String(), id)
	}
}

func TestIsValidID(t *testing.T) {
	if IsValidID("not-a-uuid") {
		t.Error("expected invalid")
	}
	if !IsValidID("01890a5d-ac96-774b-bcce-b302099a8057") {
		t.Error("expected valid")
	}
}
