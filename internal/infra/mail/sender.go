package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/rotisserie/eris"
	"gopkg.in/gomail.v2"
)

var assignmentTmpl = template.Must(template.New("assignment").Parse(`Hi {{.AgentName}},

{{.LeadCount}} new lead{{if ne .LeadCount 1}}s were{{else}} was{{end}} assigned to you{{if .FileName}} from {{.FileName}}{{end}}.
Open your dashboard to start calling.
`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		From:   from,
		Dialer: gomail.NewDialer(host, port, user, password),
	}
}

func (s *EmailSender) SendAssignmentNotice(to, agentName string, leadCount int, fileName string) error {
	m, err := s.buildAssignmentMessage(to, AssignmentEmailData{
		AgentName: agentName,
		LeadCount: leadCount,
		FileName:  fileName,
	})
	if err != nil {
		return err
	}

	if err := s.Dialer.DialAndSend(m); err != nil {
		return eris.Wrapf(err, "mail: send assignment notice to %s", to)
	}
	return nil
}

func (s *EmailSender) buildAssignmentMessage(to string, data AssignmentEmailData) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := assignmentTmpl.Execute(&body, data); err != nil {
		return nil, eris.Wrap(err, "mail: render assignment template")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%d new leads assigned to you", data.LeadCount))
	m.SetBody("text/plain", body.String())
	return m, nil
}
