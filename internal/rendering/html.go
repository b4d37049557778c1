// Package rendering turns a humanized letter into a print-ready HTML page
// with the applicant's header, the current date, salutation, and closing.
package rendering

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/jonathan/coverletter-agent/internal/config"
	"github.com/jonathan/coverletter-agent/internal/types"
)

//go:embed cover_letter.html
var letterTemplate string

// Renderer renders humanized letters to HTML.
type Renderer struct {
	tmpl   *template.Template
	sender config.Sender
	now    func() time.Time
}

type templateData struct {
	Name     string
	Title    string
	Location string
	Email    string
	Phone    string
	LinkedIn string
	Date     string
	Content  template.HTML
}

// NewRenderer creates a Renderer for the given sender identity. A parse
// failure of the embedded template is a build defect, so it is returned
// rather than deferred to request time.
func NewRenderer(sender config.Sender) (*Renderer, error) {
	tmpl, err := template.New("cover_letter").Parse(letterTemplate)
	if err != nil {
		return nil, &TemplateError{Message: "invalid letter template", Cause: err}
	}
	return &Renderer{tmpl: tmpl, sender: sender, now: time.Now}, nil
}

// RenderLetter renders a humanized draft into a complete HTML document.
func (r *Renderer) RenderLetter(draft *types.LetterDraft) (*types.RenderedLetter, error) {
	if draft == nil || strings.TrimSpace(draft.Text) == "" {
		return nil, &TemplateError{Message: "empty letter text"}
	}
	if draft.Stage != types.StageHumanized {
		return nil, &TemplateError{Message: fmt.Sprintf("expected a humanized letter, got stage %q", draft.Stage)}
	}

	data := templateData{
		Name:     r.sender.Name,
		Title:    r.sender.Title,
		Location: r.sender.Location,
		Email:    r.sender.Email,
		Phone:    r.sender.Phone,
		LinkedIn: r.sender.LinkedIn,
		Date:     r.now().Format("January 2, 2006"),
		Content:  paragraphsToHTML(draft.Text),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, &TemplateError{Message: "template execution failed", Cause: err}
	}

	return &types.RenderedLetter{HTML: buf.String()}, nil
}

// paragraphsToHTML splits letter text on blank lines and wraps each
// paragraph in an escaped <p> element.
func paragraphsToHTML(text string) template.HTML {
	var parts []string
	for _, p := range strings.Split(strings.TrimSpace(text), "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, "<p>"+template.HTMLEscapeString(p)+"</p>")
	}
	return template.HTML(strings.Join(parts, "\n"))
}
