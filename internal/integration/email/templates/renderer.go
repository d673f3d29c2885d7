// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Template names.
const (
	MonthlyReport = "monthly_report"
)

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data interface{}) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		// Fall back to empty text if no text template exists
		return htmlBuf.String(), "", nil
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// MonthlyReportData contains data for the monthly report email template.
// Amounts are preformatted.
type MonthlyReportData struct {
	Name              string
	Period            string
	TotalExpense      string
	TotalTransactions int
	PreviousTotal     string
	ChangeType        string
	PercentageChange  string // empty when there is nothing to compare with
	Categories        []BreakdownRow
	PaymentModes      []BreakdownRow
	NeedVsWant        []BreakdownRow
	Review            *ReviewData
}

// BreakdownRow is one line of a breakdown table.
type BreakdownRow struct {
	Label  string
	Amount string
}

// ReviewData is the AI narrative section. Nil hides the section.
type ReviewData struct {
	Headline   string
	Score      string
	Summary    string
	Highlights []string
	Risks      []string
	ActionPlan []string
}
