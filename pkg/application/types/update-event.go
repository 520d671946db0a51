package types

import "time"

// audit event types
const (
	EVENT_TYPE_CREATED             = "CREATED"
	EVENT_TYPE_UPDATED             = "UPDATED"
	EVENT_TYPE_SUBMITTED           = "SUBMITTED"
	EVENT_TYPE_REVISIONS_REQUESTED = "REVISIONS REQUESTED"
	EVENT_TYPE_APPROVED            = "APPROVED"
	EVENT_TYPE_REJECTED            = "REJECTED"
	EVENT_TYPE_ATTESTED            = "ATTESTED"
	EVENT_TYPE_PAUSED              = "PAUSED"
	EVENT_TYPE_EXPIRED             = "EXPIRED"
	EVENT_TYPE_CLOSED              = "CLOSED"
	EVENT_TYPE_RENEWED             = "RENEWED"
)

// EventAuthor identifies who triggered an update event.
type EventAuthor struct {
	ID   string `bson:"id" json:"id"`
	Role string `bson:"role" json:"role"`
}

// ApplicationInfoSnapshot is the redacted set of application facts recorded
// with every audit event.
type ApplicationInfoSnapshot struct {
	State              string `bson:"state" json:"state"`
	AppType            string `bson:"appType" json:"appType"`
	RevisionsRequested bool   `bson:"revisionsRequested" json:"revisionsRequested"`
}

// UpdateEvent is an append-only audit record. It is never mutated or removed.
type UpdateEvent struct {
	Author      EventAuthor             `bson:"author" json:"author"`
	EventType   string                  `bson:"eventType" json:"eventType"`
	Date        time.Time               `bson:"date" json:"date"`
	DaysElapsed int                     `bson:"daysElapsed" json:"daysElapsed"`
	Snapshot    ApplicationInfoSnapshot `bson:"applicationInfo" json:"applicationInfo"`
}

// NewUpdateEvent builds the audit record for a transition, computing the days
// elapsed since the previous event of the application.
func NewUpdateEvent(app *Application, author EventAuthor, eventType string, date time.Time) UpdateEvent {
	daysElapsed := 0
	if len(app.UpdateEvents) > 0 {
		prev := app.UpdateEvents[len(app.UpdateEvents)-1].Date
		daysElapsed = int(date.Sub(prev).Hours() / 24)
	}

	appType := "NEW"
	if app.IsRenewal {
		appType = "RENEWAL"
	}

	return UpdateEvent{
		Author:      author,
		EventType:   eventType,
		Date:        date,
		DaysElapsed: daysElapsed,
		Snapshot: ApplicationInfoSnapshot{
			State:              app.State,
			AppType:            appType,
			RevisionsRequested: app.RevisionsRequested,
		},
	}
}
