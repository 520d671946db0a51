package emailsending

import (
	"errors"
	"log/slog"
)

// QueueEmailByTemplate renders an email and puts it into the outgoing
// queue without attempting to send it.
func QueueEmailByTemplate(
	appID string,
	to []string,
	messageType string,
	payload map[string]string,
	useLowPrio bool,
) error {
	if messageDBService == nil {
		return errors.New("messaging db not initialized")
	}

	outgoingEmail, err := prepOutgoingEmail(
		appID,
		messageType,
		payload,
		to,
		useLowPrio,
	)
	if err != nil {
		return err
	}

	_, err = messageDBService.AddToOutgoingEmails(*outgoingEmail)
	if err != nil {
		slog.Error("failed to save outgoing email", slog.String("error", err.Error()))
		return err
	}
	return nil
}
