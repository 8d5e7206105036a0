package offenses

import "testing"

func TestCatalogSize(t *testing.T) {
	if len(Catalog) != 18 {
		t.Fatalf("len(Catalog) = %d, want 18", len(Catalog))
	}
}

func TestCatalogEntriesComplete(t *testing.T) {
	seen := map[string]bool{}
	valid := map[string]bool{"minor": true, "moderate": true, "severe": true}
	for _, o := range Catalog {
		if o.Type == "" || o.Name == "" || o.Description == "" || o.Emoji == "" {
			t.Errorf("incomplete entry: %+v", o)
		}
		if seen[o.Type] {
			t.Errorf("duplicate type %q", o.Type)
		}
		seen[o.Type] = true
		if !valid[o.Severity] {
			t.Errorf("offense %q has severity %q", o.Type, o.Severity)
		}
	}
}

func TestByType(t *testing.T) {
	o, ok := ByType("scope_creeper")
	if !ok {
		t.Fatal("scope_creeper not found")
	}
	if o.Name != "Scope Creeper" || o.Severity != "moderate" {
		t.Errorf("entry = %+v", o)
	}

	if _, ok := ByType("not_an_offense"); ok {
		t.Error("unknown type reported as found")
	}
}
