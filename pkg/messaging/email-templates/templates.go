package emailtemplates

import (
	"fmt"

	"github.com/icgc-argo/dac-api-sub000/pkg/messaging/templates"
)

// templateDef holds the subject line and HTML body for one message type.
// Subjects may themselves contain template placeholders.
type templateDef struct {
	Subject string
	Body    string
}

const bodyFooter = `<p>Thank you,<br/>The DACO team</p>
<p style="color:#6b6b6b;font-size:12px;">This is an automated message from {{.portalUrl}}. Please do not reply to this email.</p>`

var emailTemplates = map[string]templateDef{
	"application-submitted": {
		Subject: "[{{.appId}}] We received your application",
		Body: `<p>Dear {{.applicantName}},</p>
<p>Your application <b>{{.appId}}</b> has been submitted and is now under review.
You will be notified as soon as a decision has been made.</p>` + bodyFooter,
	},
	"application-revisions-requested": {
		Subject: "[{{.appId}}] Your application requires revisions",
		Body: `<p>Dear {{.applicantName}},</p>
<p>The Data Access Compliance Office has requested revisions to your application <b>{{.appId}}</b>.
Please sign in to <a href="{{.portalUrl}}">the portal</a> to see the requested changes and resubmit.</p>` + bodyFooter,
	},
	"application-approved": {
		Subject: "[{{.appId}}] Your application has been approved",
		Body: `<p>Dear {{.applicantName}},</p>
<p>Congratulations, your application <b>{{.appId}}</b> has been approved.
Access is granted until <b>{{.expiresAt}}</b>.</p>` + bodyFooter,
	},
	"application-rejected": {
		Subject: "[{{.appId}}] Your application has been rejected",
		Body: `<p>Dear {{.applicantName}},</p>
<p>Your application <b>{{.appId}}</b> has been rejected.</p>
{{if .denialReason}}<p>Reason: {{.denialReason}}</p>{{end}}` + bodyFooter,
	},
	"application-attested": {
		Subject: "[{{.appId}}] Annual attestation received",
		Body: `<p>Dear {{.applicantName}},</p>
<p>We have received the annual attestation for application <b>{{.appId}}</b>.
No further action is needed at this time.</p>` + bodyFooter,
	},
	"attestation-required": {
		Subject: "[{{.appId}}] Annual attestation required",
		Body: `<p>Dear {{.applicantName}},</p>
<p>An annual attestation is required for your application <b>{{.appId}}</b> by <b>{{.attestationBy}}</b>.
If no attestation is received by that date, access for this application will be paused.</p>
<p>Please sign in to <a href="{{.portalUrl}}">the portal</a> to attest.</p>` + bodyFooter,
	},
	"application-paused": {
		Subject: "[{{.appId}}] Access paused",
		Body: `<p>Dear {{.applicantName}},</p>
<p>Access for application <b>{{.appId}}</b> has been paused{{if .pauseReason}} ({{.pauseReason}}){{end}}.
Please sign in to <a href="{{.portalUrl}}">the portal</a> to resolve this.</p>` + bodyFooter,
	},
	"first-expiry-warning": {
		Subject: "[{{.appId}}] Access expires on {{.expiresAt}}",
		Body: `<p>Dear {{.applicantName}},</p>
<p>Access for application <b>{{.appId}}</b> expires on <b>{{.expiresAt}}</b>.
You can renew your access from <a href="{{.portalUrl}}">the portal</a>.</p>` + bodyFooter,
	},
	"second-expiry-warning": {
		Subject: "[{{.appId}}] Access expires soon, on {{.expiresAt}}",
		Body: `<p>Dear {{.applicantName}},</p>
<p>This is a reminder that access for application <b>{{.appId}}</b> expires on <b>{{.expiresAt}}</b>.
If you wish to keep your access, please start a renewal from <a href="{{.portalUrl}}">the portal</a>.</p>` + bodyFooter,
	},
	"application-expired": {
		Subject: "[{{.appId}}] Access has expired",
		Body: `<p>Dear {{.applicantName}},</p>
<p>Access for application <b>{{.appId}}</b> has expired.
A renewal can still be started from <a href="{{.portalUrl}}">the portal</a> for a limited time.</p>` + bodyFooter,
	},
	"application-closed": {
		Subject: "[{{.appId}}] Application closed",
		Body: `<p>Dear {{.applicantName}},</p>
<p>Application <b>{{.appId}}</b> has been closed and any associated access has been removed.</p>` + bodyFooter,
	},
	"renewal-created": {
		Subject: "[{{.sourceAppId}}] Renewal application {{.appId}} created",
		Body: `<p>Dear {{.applicantName}},</p>
<p>A renewal application <b>{{.appId}}</b> has been created from <b>{{.sourceAppId}}</b>.
Please review the carried over information, complete the remaining sections and submit it before <b>{{.renewalPeriodEnd}}</b>.</p>` + bodyFooter,
	},
}

// GenerateEmailContent renders the subject and HTML body for the given
// message type. Global template constants must already be merged into the
// payload by the caller.
func GenerateEmailContent(messageType string, payload map[string]string) (subject string, content string, err error) {
	def, ok := emailTemplates[messageType]
	if !ok {
		return "", "", fmt.Errorf("no email template for message type %s", messageType)
	}

	subject, err = templates.ResolveTemplate(messageType+"-subject", def.Subject, payload)
	if err != nil {
		return "", "", err
	}
	content, err = templates.ResolveTemplate(messageType, def.Body, payload)
	if err != nil {
		return "", "", err
	}
	return subject, content, nil
}

// HasTemplate reports whether a template is defined for the message type.
func HasTemplate(messageType string) bool {
	_, ok := emailTemplates[messageType]
	return ok
}
