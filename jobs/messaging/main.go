package main

import (
	"log/slog"
	"time"

	emailsending "github.com/icgc-argo/dac-api-sub000/pkg/messaging/email-sending"
	messagingTypes "github.com/icgc-argo/dac-api-sub000/pkg/messaging/types"
)

const (
	OUTGOING_EMAILS_BATCH_SIZE = 10

	MAX_FAILED_ATTEMPTS_BEFORE_STOP = 100
)

func main() {
	slog.Info("Starting messaging job")
	start := time.Now()

	handleOutgoingMessages()

	slog.Info("Messaging job completed", slog.String("duration", time.Since(start).String()))
}

func checkIfOutgoingEmailShouldBeSent(email messagingTypes.OutgoingEmail) bool {
	if len(email.To) < 1 || len(email.To[0]) < 1 {
		slog.Error("no recipients found", slog.String("messageType", email.MessageType))
		return false
	}
	return true
}

func handleOutgoingMessages() {
	slog.Info("Start handling outgoing messages")

	success := 0
	failed := 0
	for {
		if failed > MAX_FAILED_ATTEMPTS_BEFORE_STOP {
			slog.Error("Too many failed attempts, stopping outgoing messages")
			break
		}
		outgoingEmails, err := messagingDBService.FetchOutgoingEmails(
			OUTGOING_EMAILS_BATCH_SIZE,
			time.Now().Add(-conf.Intervals.LastSendAttemptLockDuration).Unix(),
		)
		if err != nil {
			slog.Error("Failed to fetch outgoing emails", slog.String("error", err.Error()))
			break
		}

		if len(outgoingEmails) == 0 {
			break
		}

		// Send emails:
		for _, email := range outgoingEmails {
			// detect emails that should not be sent - remove from db if so
			if !checkIfOutgoingEmailShouldBeSent(email) {
				failed++
				err = messagingDBService.DeleteOutgoingEmail(email.ID)
				if err != nil {
					slog.Error("Failed to delete outgoing email", slog.String("messageType", email.MessageType), slog.String("error", err.Error()))
				}
				continue
			}

			err := emailsending.SendOutgoingEmail(&email)
			if err != nil {
				failed++
				slog.Error("Failed to send email", slog.String("messageType", email.MessageType), slog.String("error", err.Error()))

				err = messagingDBService.ResetLastSendAttemptForOutgoing(email.ID)
				if err != nil {
					slog.Error("Failed to reset last send attempt for outgoing email", slog.String("messageType", email.MessageType), slog.String("error", err.Error()))
				}
				continue
			}

			_, err = messagingDBService.AddToSentEmails(email)
			if err != nil {
				failed++
				slog.Error("Failed to save sent email", slog.String("error", err.Error()))
				continue
			}
			err = messagingDBService.DeleteOutgoingEmail(email.ID)
			if err != nil {
				slog.Error("Failed to delete outgoing email", slog.String("messageType", email.MessageType), slog.String("error", err.Error()))
			}
			success++
		}
	}

	slog.Info("Finished handling outgoing messages", slog.Int("success", success), slog.Int("failed", failed))
}
