package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"

	"streamgrowth_app_go/config"
	"streamgrowth_app_go/models"

	"github.com/resend/resend-go/v2"
)

// emailTemplateDir holds <name>.html and <name>.txt pairs
var emailTemplateDir = "templates/emails"

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadTemplate renders templateName + ".html" and ".txt" from the email template directory
func loadTemplate(templateName string, data interface{}) (html string, text string, err error) {
	loadAndExec := func(ext string) (string, error) {
		path := filepath.Join(emailTemplateDir, templateName+ext)
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template %s: %w", path, err)
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", path, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("failed to execute template %s: %w", path, err)
		}
		return buf.String(), nil
	}

	htmlContent, err := loadAndExec(".html")
	if err != nil {
		return "", "", err
	}

	textContent, err := loadAndExec(".txt")
	if err != nil {
		return "", "", err
	}

	return htmlContent, textContent, nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("[INFO] Email logged successfully (test mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	// Validate we have at least one body
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email in a goroutine so the caller is never blocked
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Copy the email to avoid sharing slices with the caller
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("[ERROR] Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// LeadConfirmationEmailData contains data for the lead confirmation template
type LeadConfirmationEmailData struct {
	Name           string
	TwitchUsername string
	PlanName       string
	PriceRange     string
	Goals          []string
	AppURL         string
}

// BuildLeadConfirmationEmail creates the "we received your information" email
func BuildLeadConfirmationEmail(cfg *config.Config, data models.LeadFormData) *Email {
	tier, _ := TierDetails(data.Plan)
	tmplData := LeadConfirmationEmailData{
		Name:           data.Name,
		TwitchUsername: data.TwitchUsername,
		PlanName:       tier.Name,
		PriceRange:     tier.PriceRange,
		Goals:          data.Goals,
		AppURL:         cfg.AppURL,
	}

	htmlBody, textBody, err := loadTemplate("lead_confirmation", tmplData)
	if err != nil {
		log.Printf("[WARNING] Error loading lead_confirmation email template: %v", err)
		textBody = fmt.Sprintf("Hi %s,\n\nThank you for your interest! We'll review your channel %s and get back to you within 24 hours with a customized growth plan for the %s.\n",
			data.Name, data.TwitchUsername, tier.Name)
		htmlBody = ""
	}

	return &Email{
		To:       []string{data.Email},
		Subject:  "We received your growth plan request",
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// TierDetails returns the plan tier, falling back to the default tier for unknown plans
func TierDetails(plan models.Plan) (models.PlanTier, bool) {
	if tier, ok := models.TierFor(plan); ok {
		return tier, true
	}
	tier, _ := models.TierFor(models.DefaultPlan)
	return tier, false
}
