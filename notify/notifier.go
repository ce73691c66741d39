// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/danielhkuo/secret-santa/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Notifier turns letters into emails and sends them.
type Notifier struct {
	sender Sender
	tmpl   *template.Template
	topic  string
	year   int
}

func NewNotifier(sender Sender, topic string, year int) (*Notifier, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &Notifier{sender: sender, tmpl: tmpl, topic: topic, year: year}, nil
}

type letterView struct {
	models.Letter
	Topic string
	Year  int
}

// Compose renders the email for one letter.
func (n *Notifier) Compose(letter models.Letter) (Message, error) {
	view := letterView{Letter: letter, Topic: n.topic, Year: n.year}

	var html bytes.Buffer
	if err := n.tmpl.ExecuteTemplate(&html, "letter.html", view); err != nil {
		return Message{}, fmt.Errorf("failed to render letter: %w", err)
	}

	return Message{
		To:      letter.GiverEmail,
		Subject: fmt.Sprintf("%s: your secret friend is %s", n.topic, letter.RecipientCharacter),
		HTML:    html.String(),
		Text:    plainText(letter),
	}, nil
}

// SendAll sends one email per letter. A failed letter does not stop the
// rest; the returned error joins every failure.
func (n *Notifier) SendAll(ctx context.Context, letters []models.Letter) (int, error) {
	sent := 0
	var errs []error

	for _, letter := range letters {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		msg, err := n.Compose(letter)
		if err == nil {
			err = n.sender.Send(ctx, msg)
		}
		if err != nil {
			slog.Error("failed to send letter", "giver_id", letter.GiverID, "error", err)
			errs = append(errs, err)
			continue
		}
		sent++
	}

	slog.Info("letters sent", "sent", sent, "failed", len(letters)-sent)
	return sent, errors.Join(errs...)
}

func plainText(letter models.Letter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", letter.GiverFirstName)
	fmt.Fprintf(&b, "Your secret friend is %s.\n\n", letter.RecipientCharacter)
	if len(letter.Wishes) == 0 {
		b.WriteString("No wishes yet.\n")
	}
	for _, w := range letter.Wishes {
		fmt.Fprintf(&b, "%d. %s", w.Slot, w.Description)
		if w.Link != "" {
			fmt.Fprintf(&b, " (%s)", w.Link)
		}
		b.WriteString("\n")
	}
	if letter.RecipientComments != "" {
		fmt.Fprintf(&b, "\nComments: %s\n", letter.RecipientComments)
	}
	return b.String()
}
