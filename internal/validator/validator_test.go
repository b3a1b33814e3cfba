package validator

import "testing"

func TestValidISBN(t *testing.T) {
	valid := []string{
		"9780441013593",
		"0441013597",
		"978-0-441-01359-3",
		"0-441-01359-7",
		"0000000000",
	}
	for _, s := range valid {
		if !ValidISBN(s) {
			t.Errorf("ValidISBN(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"978044101359",     // 12 digits
		"97804410135933",   // 14 digits
		"044101359",        // 9 digits
		"04410135979780441", // 17 digits
		"0441013597X",      // X not allowed by the source pattern
		"isbn-0441013597",
		"978 0441013593", // spaces are not hyphens
	}
	for _, s := range invalid {
		if ValidISBN(s) {
			t.Errorf("ValidISBN(%q) = true, want false", s)
		}
	}
}

func TestCheckCollectsInOrder(t *testing.T) {
	v := New()
	v.Check(false, "first")
	v.Check(true, "skipped")
	v.Check(false, "second")

	if v.Valid() {
		t.Fatal("Valid() = true, want false")
	}
	if len(v.Messages) != 2 || v.Messages[0] != "first" || v.Messages[1] != "second" {
		t.Errorf("Messages = %v, want [first second]", v.Messages)
	}
}

func TestIn(t *testing.T) {
	if !In("b", "a", "b", "c") {
		t.Error("In(b) = false, want true")
	}
	if In("d", "a", "b", "c") {
		t.Error("In(d) = true, want false")
	}
}
