package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for links in notification emails
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) SendComplaintAssigned(to, number, title string) error {
	complaintURL := fmt.Sprintf("%s/complaints/%s", s.config.BaseURL, number)

	subject := fmt.Sprintf("Complaint %s assigned to you", number)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Complaint assigned to you</h2>
			<p>Complaint <strong>%s</strong> has been assigned to you:</p>
			<p>%s</p>
			<p><a href="%s">Open the complaint</a></p>
		</body>
		</html>
	`, number, title, complaintURL)

	plainBody := fmt.Sprintf(`Complaint %s has been assigned to you:

%s

Open it at: %s
`, number, title, complaintURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendComplaintReplied(to, number, title string) error {
	complaintURL := fmt.Sprintf("%s/complaints/%s", s.config.BaseURL, number)

	subject := fmt.Sprintf("New reply on complaint %s", number)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New reply</h2>
			<p>A new reply was posted on complaint <strong>%s</strong>:</p>
			<p>%s</p>
			<p><a href="%s">Open the complaint</a></p>
		</body>
		</html>
	`, number, title, complaintURL)

	plainBody := fmt.Sprintf(`A new reply was posted on complaint %s:

%s

Open it at: %s
`, number, title, complaintURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
