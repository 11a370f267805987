package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	texttemplate "text/template"

	"github.com/MKhiriev/go-community-access/models"
)

//go:embed templates/*.html templates/email/*
var templateFiles embed.FS

// Page names a renderable web page.
type Page string

const (
	PageLogin                  Page = "login.html"
	PagePasswordChangeRequired Page = "password_change_required.html"
	PageRecoverRequest         Page = "recover_request.html"
	PageRecoverVerify          Page = "recover_verify.html"
	PageHome                   Page = "home.html"
)

var pages = []Page{
	PageLogin,
	PagePasswordChangeRequired,
	PageRecoverRequest,
	PageRecoverVerify,
	PageHome,
}

// RecoveryEmailSubject is the subject line of the recovery code e-mail.
const RecoveryEmailSubject = "Recovery code - Community Board"

// PageData is the data every page template receives.
type PageData struct {
	Title    string
	Flashes  []models.Flash
	Errors   []string
	Identity *models.Identity

	// Next is the post-login redirect target.
	Next string

	// Email is the address the recovery flow is running for.
	Email string

	// Username is echoed back into the login form.
	Username string
}

// RecoveryEmailData fills the recovery e-mail templates.
type RecoveryEmailData struct {
	DisplayName string
	Code        string
	ValidFor    string
}

// Renderer holds the parsed templates.
type Renderer struct {
	pages     map[Page]*template.Template
	emailHTML *template.Template
	emailText *texttemplate.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[Page]*template.Template, len(pages))}

	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFiles, "templates/base.html", "templates/"+string(page))
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	var err error
	if r.emailHTML, err = template.ParseFS(templateFiles, "templates/email/recovery_code.html"); err != nil {
		return nil, fmt.Errorf("parsing recovery e-mail: %w", err)
	}
	if r.emailText, err = texttemplate.ParseFS(templateFiles, "templates/email/recovery_code.txt"); err != nil {
		return nil, fmt.Errorf("parsing recovery e-mail text: %w", err)
	}

	return r, nil
}

// Render writes page to w.
func (r *Renderer) Render(w io.Writer, page Page, data PageData) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	// render into a buffer so a failing template never leaves half a page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("rendering page %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// RecoveryEmail builds the recovery code message addressed to to.
func (r *Renderer) RecoveryEmail(to string, data RecoveryEmailData) (models.Message, error) {
	var html, text bytes.Buffer

	if err := r.emailHTML.Execute(&html, data); err != nil {
		return models.Message{}, fmt.Errorf("rendering recovery e-mail: %w", err)
	}
	if err := r.emailText.Execute(&text, data); err != nil {
		return models.Message{}, fmt.Errorf("rendering recovery e-mail text: %w", err)
	}

	return models.Message{
		To:       to,
		Subject:  RecoveryEmailSubject,
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}
