package directory

// DefaultContacts is the agency's customs-broker address book.
func DefaultContacts() []Contact {
	return []Contact{
		{Broker: "MULTI DESPACHOS", Emails: []string{"docs@multidespachos.example.com"}},
		{Broker: "SANTOS BROKERS", Emails: []string{"export@santosbrokers.example.com", "financeiro@santosbrokers.example.com"}},
		{Broker: "PORTO ASSESSORIA ADUANEIRA", Emails: []string{"due@portoassessoria.example.com"}},
		{Broker: "ATLANTICO COMISSARIA", Emails: []string{"comissaria@atlantico.example.com"}},
		{Broker: "GRANEL DESPACHANTES", Emails: []string{"granel@despachantes.example.com"}},
	}
}

// Default returns a directory over DefaultContacts.
func Default() *Directory {
	return New(DefaultContacts())
}
