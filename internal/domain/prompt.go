package domain

import (
	"fmt"
	"strings"
	"text/template"
)

// DefaultPromptTemplate asks the model for one verse as strict JSON.
const DefaultPromptTemplate = `Based on the feeling: "{{.Feeling}}", provide ONE uplifting but less-common Bible verse. ` +
	`Respond ONLY as strict JSON: {"text":"<full verse text>","reference":"Book Chapter:Verse"}.`

// Prompt renders the instruction sent upstream for a given feeling.
type Prompt struct {
	tmpl *template.Template
}

// ParsePrompt compiles a prompt template. The template receives a value
// with a single Feeling field.
func ParsePrompt(text string) (*Prompt, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultPromptTemplate
	}
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	return &Prompt{tmpl: tmpl}, nil
}

// MustParsePrompt is ParsePrompt for templates known at compile time.
func MustParsePrompt(text string) *Prompt {
	p, err := ParsePrompt(text)
	if err != nil {
		panic(err)
	}
	return p
}

// Build embeds feeling verbatim into the prompt.
func (p *Prompt) Build(feeling string) (string, error) {
	var b strings.Builder
	if err := p.tmpl.Execute(&b, struct{ Feeling string }{Feeling: feeling}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}
