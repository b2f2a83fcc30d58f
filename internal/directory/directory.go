// Package directory looks up customs-broker contact emails.
//
// Lookup tries, in order, and returns the first hit:
//  1. exact match of the normalized name against a broker key;
//  2. substring match in either direction, scanning keys in declared order;
//  3. token overlap: any name token longer than two characters contained in
//     any token of a key, scanning keys in declared order.
//
// No match yields "".
package directory

import (
	"strings"
)

// Contact is one directory entry.
type Contact struct {
	Broker string   `yaml:"broker"`
	Emails []string `yaml:"emails"`
}

// Directory is an ordered, read-only broker contact list.
type Directory struct {
	contacts []Contact
	keys     []string
	tokens   [][]string
}

// New builds a directory. Declaration order is preserved and decides ties.
func New(contacts []Contact) *Directory {
	d := &Directory{
		contacts: make([]Contact, len(contacts)),
		keys:     make([]string, len(contacts)),
		tokens:   make([][]string, len(contacts)),
	}
	copy(d.contacts, contacts)
	for i, c := range d.contacts {
		d.keys[i] = normalize(c.Broker)
		d.tokens[i] = strings.Fields(d.keys[i])
	}
	return d
}

// Lookup returns the semicolon-joined emails of the best-matching broker.
func (d *Directory) Lookup(brokerName string) string {
	name := normalize(brokerName)
	if name == "" {
		return ""
	}

	for i, key := range d.keys {
		if key == name {
			return d.emails(i)
		}
	}

	for i, key := range d.keys {
		if key == "" {
			continue
		}
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return d.emails(i)
		}
	}

	nameTokens := strings.Fields(name)
	for i, keyTokens := range d.tokens {
		for _, nt := range nameTokens {
			if len(nt) <= 2 {
				continue
			}
			for _, kt := range keyTokens {
				if strings.Contains(kt, nt) {
					return d.emails(i)
				}
			}
		}
	}

	return ""
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	return len(d.contacts)
}

func (d *Directory) emails(i int) string {
	var out []string
	for _, e := range d.contacts[i].Emails {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return strings.Join(out, ";")
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
