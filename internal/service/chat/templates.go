package chat

import "github.com/zhouzirui/folio/backend/internal/analysis/intent"

// replyTemplates are formatted with {persona} and {mode}.
var replyTemplates = map[intent.Intent]string{
	intent.Greeting: "Hello! {persona} What would you like to know?",
	intent.Help: "{persona} I can tell you about John's projects, the services he offers, " +
		"rough pricing, or how to get in touch. Just ask!",
	intent.Projects: "{persona} Highlights include an enterprise ERP system, an industrial IoT monitoring " +
		"platform and a voice AI assistant. Which one should I go into?",
	intent.Services: "{persona} John builds enterprise web applications, IoT solutions, voice AI assistants, " +
		"business automation, data dashboards and cloud infrastructure.",
	intent.Pricing: "{persona} Every engagement is scoped individually. Share a few details through the " +
		"contact form and John will send you a tailored quote.",
	intent.Contact: "{persona} The quickest way to reach John is the contact form on this page. " +
		"He usually replies within a day or two.",
	intent.Fallback: "{persona} I'm not sure I caught that. Try asking about projects, services, pricing or contact details.",
}
