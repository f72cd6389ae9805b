package domain

import "time"

// Menu is a persisted menu document: the serialized tree plus bookkeeping.
type Menu struct {
	ID              string
	Name            string
	DefaultLanguage string
	Payload         []RawNode
	Version         int
	// PublishedVersion is the version last copied to the publications log.
	PublishedVersion *int
	PublishedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasUnpublishedChanges reports whether the saved version is newer than the
// published one.
func (m *Menu) HasUnpublishedChanges() bool {
	if m.PublishedVersion == nil {
		return m.Version > 0
	}
	return m.Version > *m.PublishedVersion
}

// Publication is one published revision of a menu.
type Publication struct {
	MenuID      string
	Version     int
	Payload     []RawNode
	PublishedAt time.Time
}

// ProviderStage is a catalog entry stored for a provider, with the time its
// details were last pulled from the provider.
type ProviderStage struct {
	StageMapping
	PulledAt *time.Time
}
