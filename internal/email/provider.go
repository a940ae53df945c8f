package email

// Email is one outbound message.
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Provider sends email. The platform only sends operator-facing mail (admin
// alerts on webhook receipt and manual verification requests), never bulk.
type Provider interface {
	Send(email *Email) error
	// SendAdminAlert delivers a short operational alert to the configured
	// admin address.
	SendAdminAlert(subject, body string) error
	Validate() error
}

// NopProvider drops all mail; used in tests and unconfigured environments.
type NopProvider struct{}

func (NopProvider) Send(*Email) error                { return nil }
func (NopProvider) SendAdminAlert(_, _ string) error { return nil }
func (NopProvider) Validate() error                  { return nil }
