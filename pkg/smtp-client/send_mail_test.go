package smtp_client

import (
	"testing"

	messagingTypes "github.com/icgc-argo/dac-api-sub000/pkg/messaging/types"
)

func TestBuildEmail(t *testing.T) {
	servers := SmtpServerList{
		From:    "noreply@daco.example.org",
		Sender:  "mailer@daco.example.org",
		ReplyTo: []string{"helpdesk@daco.example.org"},
	}
	to := []string{"ada@uni.example.org"}

	t.Run("uses the server list defaults", func(t *testing.T) {
		e := buildEmail(servers, to, "Application approved", "<p>body</p>", nil)
		if e.From != "noreply@daco.example.org" {
			t.Errorf("unexpected from: %s", e.From)
		}
		if e.Sender != "mailer@daco.example.org" {
			t.Errorf("unexpected sender: %s", e.Sender)
		}
		if len(e.ReplyTo) != 1 || e.ReplyTo[0] != "helpdesk@daco.example.org" {
			t.Errorf("unexpected replyTo: %v", e.ReplyTo)
		}
		if len(e.To) != 1 || e.To[0] != "ada@uni.example.org" {
			t.Errorf("unexpected to: %v", e.To)
		}
		if e.Subject != "Application approved" {
			t.Errorf("unexpected subject: %s", e.Subject)
		}
		if string(e.HTML) != "<p>body</p>" {
			t.Errorf("unexpected html content: %s", string(e.HTML))
		}
	})

	t.Run("applies header overrides", func(t *testing.T) {
		e := buildEmail(servers, to, "subject", "body", &messagingTypes.HeaderOverrides{
			From:    "override@daco.example.org",
			Sender:  "other-mailer@daco.example.org",
			ReplyTo: []string{"direct@daco.example.org"},
		})
		if e.From != "override@daco.example.org" {
			t.Errorf("unexpected from: %s", e.From)
		}
		if e.Sender != "other-mailer@daco.example.org" {
			t.Errorf("unexpected sender: %s", e.Sender)
		}
		if len(e.ReplyTo) != 1 || e.ReplyTo[0] != "direct@daco.example.org" {
			t.Errorf("unexpected replyTo: %v", e.ReplyTo)
		}
	})

	t.Run("noReplyTo clears the reply address", func(t *testing.T) {
		e := buildEmail(servers, to, "subject", "body", &messagingTypes.HeaderOverrides{
			NoReplyTo: true,
			ReplyTo:   []string{"ignored@daco.example.org"},
		})
		if len(e.ReplyTo) != 0 {
			t.Errorf("expected empty replyTo, got %v", e.ReplyTo)
		}
	})
}
