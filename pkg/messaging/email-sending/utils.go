package emailsending

import (
	emailtemplates "github.com/icgc-argo/dac-api-sub000/pkg/messaging/email-templates"
	messagingTypes "github.com/icgc-argo/dac-api-sub000/pkg/messaging/types"
)

func prepOutgoingEmail(
	appID string,
	messageType string,
	payload map[string]string,
	to []string,
	useLowPrio bool,
) (*messagingTypes.OutgoingEmail, error) {
	if payload == nil {
		payload = map[string]string{}
	}
	for k, v := range GlobalTemplateInfos {
		if _, ok := payload[k]; !ok {
			payload[k] = v
		}
	}

	subject, content, err := emailtemplates.GenerateEmailContent(messageType, payload)
	if err != nil {
		return nil, err
	}

	outgoingEmail := messagingTypes.OutgoingEmail{
		MessageType: messageType,
		AppID:       appID,
		To:          to,
		Subject:     subject,
		Content:     content,
		HighPrio:    !useLowPrio,
	}
	return &outgoingEmail, nil
}
