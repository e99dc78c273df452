package adapter

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
)

// smtpNotifier sends the owner notification over plain SMTP. It is used
// fire-and-forget by the ingestion pipeline; delivery failures are logged and
// swallowed there.
type smtpNotifier struct {
	cfg    config.Notify
	logger *logger.Logger
}

// NewSMTPNotifier constructs a [Notifier] over net/smtp. With an empty SMTP
// address it degrades to a no-op so deployments without a mail relay work
// unchanged.
func NewSMTPNotifier(cfg config.Notify, log *logger.Logger) Notifier {
	return &smtpNotifier{cfg: cfg, logger: log}
}

func (n *smtpNotifier) SubmissionReceived(ctx context.Context, to, formTitle string, submittedAt time.Time) error {
	if n.cfg.Address == "" || to == "" {
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: New submission: %s\r\n", formTitle)
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "Your form %q received a new submission at %s.\r\n",
		formTitle, submittedAt.UTC().Format(time.RFC1123))

	if err := smtp.SendMail(n.cfg.Address, nil, n.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		n.logger.Err(err).Str("func", "*smtpNotifier.SubmissionReceived").Str("to", to).Msg("failed to send notification email")
		return fmt.Errorf("send notification email: %w", err)
	}

	return nil
}
