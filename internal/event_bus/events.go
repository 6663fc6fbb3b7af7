package event_bus

const (
	ProfileUpdatedEvent EventType = "profile.updated"
	ProfileDeletedEvent EventType = "profile.deleted"
)

// ProfileChanged is published whenever a stored week rule profile is modified or removed.
type ProfileChanged struct {
	Uid  string
	Name string
}
