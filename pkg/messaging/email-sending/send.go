package emailsending

import (
	"errors"
	"log/slog"

	messageDB "github.com/icgc-argo/dac-api-sub000/pkg/db/messaging"
	messagingTypes "github.com/icgc-argo/dac-api-sub000/pkg/messaging/types"
	smtpclient "github.com/icgc-argo/dac-api-sub000/pkg/smtp-client"
)

var (
	smtpClients      *smtpclient.SmtpClients
	messageDBService *messageDB.MessagingDBService

	GlobalTemplateInfos = map[string]string{}
)

func InitMessageSendingVariables(
	sc *smtpclient.SmtpClients,
	globalTemplateInfos map[string]string,
	mdb *messageDB.MessagingDBService,
) {
	smtpClients = sc
	GlobalTemplateInfos = globalTemplateInfos
	messageDBService = mdb
}

func SendOutgoingEmail(
	outgoing *messagingTypes.OutgoingEmail,
) error {
	if smtpClients == nil {
		return errors.New("smtp clients not initialized")
	}
	return smtpClients.SendMail(
		outgoing.To,
		outgoing.Subject,
		outgoing.Content,
		outgoing.HeaderOverrides,
	)
}

// SendInstantEmailByTemplate renders and sends one notification email right
// away. When sending fails the message is stored in the outgoing queue so
// the messaging job can retry it later.
func SendInstantEmailByTemplate(
	appID string,
	to []string,
	messageType string,
	payload map[string]string,
	useLowPrio bool,
) error {
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

	err = SendOutgoingEmail(outgoingEmail)
	if err != nil {
		slog.Debug("error while sending email", slog.String("error", err.Error()))
		if messageDBService == nil {
			return err
		}
		_, errS := messageDBService.AddToOutgoingEmails(*outgoingEmail)
		if errS != nil {
			slog.Error("failed to save outgoing email", slog.String("error", errS.Error()))
			return errS
		}
		slog.Debug("failed to send email but saved to outgoing", slog.String("error", err.Error()))
		return err
	}

	if messageDBService != nil {
		_, err = messageDBService.AddToSentEmails(*outgoingEmail)
		if err != nil {
			slog.Error("failed to save sent email", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
