package intent

import "strings"

// Intent names the keyword group a chat message matched.
type Intent string

const (
	Greeting Intent = "greeting"
	Help     Intent = "help"
	Projects Intent = "projects"
	Services Intent = "services"
	Pricing  Intent = "pricing"
	Contact  Intent = "contact"
	Fallback Intent = "fallback"
)

// Group binds an intent to the keywords that select it.
type Group struct {
	Intent   Intent
	Keywords []string
}

// groups are evaluated in order and the first match wins. Keywords overlap
// ("hi" is inside "which"), so the order is part of the behaviour.
var groups = []Group{
	{Greeting, []string{"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening"}},
	{Help, []string{"help", "assist", "support", "how do i", "can you"}},
	{Projects, []string{"project", "portfolio", "work", "case study", "built"}},
	{Services, []string{"service", "iot", "voice", "automation", "cloud", "analytics", "erp", "web app", "dashboard"}},
	{Pricing, []string{"price", "pricing", "cost", "budget", "quote", "fee"}},
	{Contact, []string{"contact", "email", "reach", "hire", "call", "meeting"}},
}

// Groups returns the keyword groups in evaluation order.
func Groups() []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Intent: g.Intent, Keywords: append([]string(nil), g.Keywords...)}
	}
	return out
}

// Classify picks the first group with a keyword contained in text, ignoring
// case. Text matching nothing yields Fallback.
func Classify(text string) Intent {
	normalized := strings.ToLower(text)
	for _, g := range groups {
		for _, word := range g.Keywords {
			if strings.Contains(normalized, word) {
				return g.Intent
			}
		}
	}
	return Fallback
}
