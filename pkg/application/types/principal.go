package types

// roles derived from the caller's credential at the trust boundary
const (
	ROLE_SUBMITTER = "SUBMITTER"
	ROLE_ADMIN     = "ADMIN"
	ROLE_SYSTEM    = "SYSTEM"
)

// Principal is the closed set of caller identities the core accepts. It is
// produced once when the credential is verified and passed explicitly into
// every operation; the core never inspects raw claims.
type Principal interface {
	Role() string
	AuthorID() string
}

// UserPrincipal is a human caller (submitter or admin reviewer).
type UserPrincipal struct {
	ID      string
	Email   string
	IsAdmin bool
}

func (p UserPrincipal) Role() string {
	if p.IsAdmin {
		return ROLE_ADMIN
	}
	return ROLE_SUBMITTER
}

func (p UserPrincipal) AuthorID() string { return p.ID }

// SystemPrincipal is the scheduler-invoked batch actor.
type SystemPrincipal struct{}

func (p SystemPrincipal) Role() string     { return ROLE_SYSTEM }
func (p SystemPrincipal) AuthorID() string { return "system" }

// AsAuthor converts the principal into an audit event author.
func AsAuthor(p Principal) EventAuthor {
	return EventAuthor{ID: p.AuthorID(), Role: p.Role()}
}
