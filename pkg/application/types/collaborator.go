package types

const (
	COLLABORATOR_TYPE_STUDENT   = "student"
	COLLABORATOR_TYPE_PERSONNEL = "personnel"
)

// Collaborator is owned by the collaborators section list. The ID is assigned
// by the server on add and is unique within the list.
type Collaborator struct {
	ID   string       `bson:"id" json:"id"`
	Meta SectionMeta  `bson:"meta" json:"meta"`
	Info PersonalInfo `bson:"info" json:"info"`
	Type string       `bson:"type" json:"type"`
}
