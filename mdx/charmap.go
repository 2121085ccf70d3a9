package mdx

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// LookupCharmap returns the character map with the given name, such as
// "Windows 1252" or "IBM Code Page 437".
func LookupCharmap(name string) (*charmap.Charmap, error) {
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok && cm.String() == name {
			return cm, nil
		}
	}
	return nil, fmt.Errorf("unknown character map %q", name)
}

// CharmapNames returns the names of every character map.
func CharmapNames() []string {
	var names []string
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			names = append(names, cm.String())
		}
	}
	return names
}
