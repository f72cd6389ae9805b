package domain

import "time"

// StageMapping references one external provider stage from a season.
type StageMapping struct {
	ProviderID    string
	StageID       string
	CategoryName  string
	StageName     string
	SeasonName    string
	Gender        Gender
	StartDate     *time.Time
	EndDate       *time.Time
	AssignedCount int // number of seasons in the tree referencing this stage
}

// Key identifies the external stage across providers.
func (m StageMapping) Key() string {
	return m.ProviderID + ":" + m.StageID
}

// DisplayName joins the category, stage and season names.
func (m StageMapping) DisplayName() string {
	name := m.CategoryName
	for _, part := range []string{m.StageName, m.SeasonName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " / "
		}
		name += part
	}
	return name
}

// IsAssigned reports whether at least one season references the stage.
func (m StageMapping) IsAssigned() bool {
	return m.AssignedCount > 0
}
