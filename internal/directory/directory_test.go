package directory

import "testing"

func TestLookup(t *testing.T) {
	d := New([]Contact{
		{Broker: "SANTOS BROKERS", Emails: []string{"a@x.com", "b@x.com"}},
		{Broker: "SANTOS", Emails: []string{"exact@x.com"}},
		{Broker: "PORTO ASSESSORIA ADUANEIRA", Emails: []string{"porto@x.com"}},
		{Broker: "MULTIDESPACHOS", Emails: []string{"multi@x.com"}},
	})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"exact beats earlier substring", "santos", "exact@x.com"},
		{"name contains key", "SANTOS BROKERS LTDA", "a@x.com;b@x.com"},
		{"key contains name", "ASSESSORIA ADUANEIRA", "porto@x.com"},
		{"token overlap", "PORTO SEGURO LTDA", "porto@x.com"},
		{"token inside key token", "DESPACHOS GERAIS", "multi@x.com"},
		{"short tokens ignored", "XX PO", ""},
		{"no match", "NOBODY", ""},
		{"empty", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Lookup(tt.in); got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLookupDeclarationOrder(t *testing.T) {
	d := New([]Contact{
		{Broker: "ALPHA CARGO", Emails: []string{"first@x.com"}},
		{Broker: "BETA CARGO", Emails: []string{"second@x.com"}},
	})
	// "CARGO" is a substring of both keys; the first declared wins.
	if got := d.Lookup("CARGO"); got != "first@x.com" {
		t.Errorf("Lookup = %q, want first@x.com", got)
	}
}

func TestDefaultDirectory(t *testing.T) {
	if Default().Lookup("Granel Despachantes S/A") == "" {
		t.Error("expected default directory to resolve a known broker")
	}
}
