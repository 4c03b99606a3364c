package utils

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"comply/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through SendGrid. Delivery problems
// are logged and returned; callers treat email as best effort.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("[EMAIL] Skipping %q to %s: no SendGrid key configured", subject, toEmail)
		return nil
	}

	from := sgmail.NewEmail(config.AppConfig.AppName, config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending %q to %s: %v", subject, toEmail, err)
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("[EMAIL] Failed to send %q to %s, response code: %d", subject, toEmail, resp.StatusCode)
		return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
	}
	return nil
}

// SendAssignmentNotification emails a worker about a newly assigned course
func SendAssignmentNotification(toEmail, toName, courseTitle string, dueDate *time.Time) {
	due := "There is no due date for this course."
	if dueDate != nil {
		due = fmt.Sprintf("Please complete it by <b>%s</b>.", dueDate.Format("January 2, 2006"))
	}
	body := emailTemplate(
		"New Training Assigned",
		fmt.Sprintf(`
			<h2>Hi %s,</h2>
			<p>You have been assigned the compliance course <b>%s</b>.</p>
			<p>%s</p>
			<p>Log in to your training portal to get started.</p>`, toName, courseTitle, due),
	)

	// Fire and forget; assignment creation must not block on email
	go func() {
		_ = SendEmail(toEmail, toName, "New training assigned: "+courseTitle, body)
	}()
}

// SendOverdueReminder emails a worker about an overdue assignment
func SendOverdueReminder(toEmail, toName, courseTitle string, dueDate *time.Time) error {
	dueText := ""
	if dueDate != nil {
		dueText = fmt.Sprintf(" It was due on <b>%s</b>.", dueDate.Format("January 2, 2006"))
	}
	body := emailTemplate(
		"Training Overdue",
		fmt.Sprintf(`
			<h2>Hi %s,</h2>
			<p>Your compliance course <b>%s</b> is overdue.%s</p>
			<p>Please complete it as soon as possible to stay compliant.</p>`, toName, courseTitle, dueText),
	)
	return SendEmail(toEmail, toName, "Training overdue: "+courseTitle, body)
}

// emailTemplate wraps body content in the shared HTML shell
func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">This is an automated message from %s. Please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent, config.AppConfig.AppName)
}
