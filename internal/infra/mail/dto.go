package mail

import "gopkg.in/gomail.v2"

type AssignmentEmailData struct {
	AgentName string
	LeadCount int
	FileName  string
}

// Dialer sends prepared messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	Dialer Dialer
}
