package mailer

import (
	"bytes"
	"html/template"
	"time"

	"github.com/aria-creative/vitrine/internal/model"
)

// The two notification bodies. html/template handles escaping of
// visitor-supplied fields.

var adminAlertTmpl = template.Must(template.New("adminAlert").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Nouveau message de contact</h2>
  <div style="background: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Nom:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Entreprise:</strong> {{.Company}}</p>
    <p><strong>Sujet:</strong> {{.Subject}}</p>
  </div>
  <div style="background: white; padding: 20px; border-left: 4px solid #2563eb; margin: 20px 0;">
    <h3>Message:</h3>
    <p style="white-space: pre-wrap;">{{.Message}}</p>
  </div>
  <hr style="margin: 30px 0;">
  <p style="color: #64748b; font-size: 14px;">Message reçu le {{.ReceivedAt}}</p>
</div>`))

var acknowledgementTmpl = template.Must(template.New("ack").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Merci pour votre message !</h2>
  <p>Bonjour {{.Name}},</p>
  <p>Nous avons bien reçu votre message concernant "<strong>{{.Subject}}</strong>" et nous vous en remercions.</p>
  <p>Notre équipe va examiner votre demande et vous recontactera dans les plus brefs délais, généralement sous 24-48h.</p>
  <div style="background: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3>Récapitulatif de votre message:</h3>
    <p><strong>Sujet:</strong> {{.Subject}}</p>
    <p><strong>Entreprise:</strong> {{.Company}}</p>
    <p style="margin-top: 15px;"><strong>Votre message:</strong></p>
    <p style="white-space: pre-wrap; font-style: italic;">{{.Message}}</p>
  </div>
  <p>En attendant, n'hésitez pas à consulter nos réalisations sur notre site web.</p>
  <p>À bientôt !<br><strong>L'équipe Aria Creative</strong></p>
  <hr style="margin: 30px 0;">
  <p style="color: #64748b; font-size: 12px;">Si vous n'êtes pas à l'origine de ce message, vous pouvez ignorer cet email.</p>
</div>`))

type templateData struct {
	Name       string
	Email      string
	Company    string
	Subject    string
	Message    string
	ReceivedAt string
}

func newTemplateData(msg *model.ContactMessage) templateData {
	company := msg.Company
	if company == "" {
		company = "Non spécifiée"
	}
	return templateData{
		Name:       msg.Name,
		Email:      msg.Email,
		Company:    company,
		Subject:    msg.Subject,
		Message:    msg.Message,
		ReceivedAt: msg.CreatedAt.In(time.Local).Format("02/01/2006 15:04"),
	}
}

func renderAdminAlert(msg *model.ContactMessage) string {
	var buf bytes.Buffer
	// Parsed at init; execution over a flat struct cannot fail.
	_ = adminAlertTmpl.Execute(&buf, newTemplateData(msg))
	return buf.String()
}

func renderAcknowledgement(msg *model.ContactMessage) string {
	var buf bytes.Buffer
	_ = acknowledgementTmpl.Execute(&buf, newTemplateData(msg))
	return buf.String()
}
