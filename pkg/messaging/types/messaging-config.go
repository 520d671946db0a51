package types

type MessagingConfigs struct {
	// Values available to every email template, e.g. portal URL or
	// support address.
	GlobalEmailTemplateConstants map[string]string `json:"global_email_template_constants" yaml:"global_email_template_constants"`

	// Addresses that receive reviewer facing notifications.
	AdminRecipients []string `json:"admin_recipients" yaml:"admin_recipients"`

	SmtpServerConfigPath string `json:"smtp_server_config_path" yaml:"smtp_server_config_path"`
}
