// Package validate checks request payloads before they reach the store.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailRx accepts dot-separated local and domain labels with an alphabetic TLD.
var emailRx = regexp.MustCompile(
	`^[A-Za-z0-9_%+\-]+(?:\.[A-Za-z0-9_%+\-]+)*` +
		`@(?:[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?\.)+[A-Za-z]{2,}$`)

// Error describes the first rule a payload violated. Its message is safe to
// show to clients.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fail(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// MinLen requires at least limit characters. Blank values report the
// required message instead.
func MinLen(field, v string, limit int, requiredMsg, tooShortMsg string) error {
	if strings.TrimSpace(v) == "" {
		return fail(field, "%s", requiredMsg)
	}
	if utf8.RuneCountInString(v) < limit {
		return fail(field, "%s", tooShortMsg)
	}
	return nil
}

// Email requires a plausible address.
func Email(v string) error {
	if strings.TrimSpace(v) == "" {
		return fail("email", "Please enter your email address")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fail("email", "Please enter a valid email address")
	}
	return nil
}

// NonEmpty requires a value with at least one non-space character.
func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fail(field, "%s is required", field)
	}
	return nil
}

// -------- Request specific helpers ----------

// ContactMessage validates the public contact form.
func ContactMessage(name, email, subject, message string) error {
	if err := MinLen("name", name, 2, "Please enter your name", "Name must be at least 2 characters"); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	if err := MinLen("subject", subject, 3, "Please enter a subject", "Subject must be at least 3 characters"); err != nil {
		return err
	}
	if err := MinLen("message", message, 10, "Please enter your message", "Message must be at least 10 characters"); err != nil {
		return err
	}
	return nil
}

// ChatMessage validates a chat message submission.
func ChatMessage(sessionID, content, mode string) error {
	if err := NonEmpty("sessionId", sessionID); err != nil {
		return err
	}
	if content == "" {
		return fail("content", "Message cannot be empty")
	}
	if err := NonEmpty("mode", mode); err != nil {
		return err
	}
	return nil
}
