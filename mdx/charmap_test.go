package mdx

import (
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestLookupCharmap(t *testing.T) {
	cm, err := LookupCharmap(charmap.Windows1251.String())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cm != charmap.Windows1251 {
		t.Errorf("expected Windows 1251, got %s", cm)
	}
	if _, err := LookupCharmap("Klingon"); err == nil {
		t.Error("expected error for unknown name")
	}
	names := CharmapNames()
	if len(names) == 0 {
		t.Fatal("expected names")
	}
	for _, name := range names {
		if _, err := LookupCharmap(name); err != nil {
			t.Errorf("%s: %s", name, err)
		}
	}
}
