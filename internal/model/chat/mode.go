package chat

import "time"

// Accent colours understood by the front end.
const (
	AccentMain      = "main"
	AccentSecondary = "secondary"
	AccentTertiary  = "tertiary"
)

// Mode is a named persona configuration that flavours canned replies.
type Mode struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Persona     string    `json:"persona"`
	Icon        string    `json:"icon"`
	AccentColor string    `json:"accentColor"`
	IsDefault   Flag      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewMode carries the caller-supplied fields of a Mode.
type NewMode struct {
	Name        string
	Description string
	Persona     string
	Icon        string
	AccentColor string
	IsDefault   bool
}

// Seed returns the modes created on every process start.
func Seed() []NewMode {
	return []NewMode{
		{
			Name:        "Portfolio",
			Description: "A friendly guide to John's projects, services and experience.",
			Persona:     "I'm John's portfolio guide, here to walk you through his work.",
			Icon:        "💼",
			AccentColor: AccentMain,
			IsDefault:   true,
		},
		{
			Name:        "Technical",
			Description: "Deep dives into architecture, stacks and engineering trade-offs.",
			Persona:     "I'm a senior engineer who loves talking about architecture and code.",
			Icon:        "🛠️",
			AccentColor: AccentSecondary,
		},
		{
			Name:        "Business",
			Description: "Outcomes, timelines and how a project could fit your organisation.",
			Persona:     "I'm a consultant focused on business value and delivery.",
			Icon:        "📈",
			AccentColor: AccentTertiary,
		},
	}
}
