package domain

// RawText is the persisted form of a LocalizedText: language -> value.
type RawText map[string]RawValue

// RawValue is one persisted translation.
type RawValue struct {
	Value      string `json:"value"`
	Translated bool   `json:"translated,omitempty"`
}

// RawStageMapping is the persisted form of a StageMapping.
type RawStageMapping struct {
	ProviderID   string  `json:"providerId"`
	StageID      string  `json:"stageId"`
	CategoryName string  `json:"categoryName,omitempty"`
	StageName    string  `json:"stageName,omitempty"`
	SeasonName   string  `json:"seasonName,omitempty"`
	Gender       string  `json:"gender,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
}

// RawNode is the plain structure exchanged with the persistence
// collaborator. Which fields are populated depends on Type; see
// tree.Repository.Serializable for the per-kind whitelist.
type RawNode struct {
	ID        string  `json:"id,omitempty"`
	Type      string  `json:"type"`
	Name      RawText `json:"name,omitempty"`
	ShortName RawText `json:"shortName,omitempty"`
	Code      RawText `json:"code,omitempty"`

	Hidden   *bool   `json:"hidden,omitempty"`
	Primary  *bool   `json:"primary,omitempty"`
	Domestic *bool   `json:"domestic,omitempty"`
	Gender   *string `json:"gender,omitempty"`

	NoStandings  *bool `json:"noStandings,omitempty"`
	NoLiveScores *bool `json:"noLiveScores,omitempty"`
	NoStatistics *bool `json:"noStatistics,omitempty"`

	HighlightedTournament *bool    `json:"highlightedTournament,omitempty"`
	HighlightedSections   []string `json:"highlightedSections,omitempty"`
	MatchRoundWhitelist   []string `json:"matchRoundWhitelist,omitempty"`

	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`

	StageMappings       []RawStageMapping `json:"stageMappings,omitempty"`
	LocalizedSortOrders map[string]int    `json:"localizedSortOrders,omitempty"`
	FlagVariants        map[string]string `json:"flagVariants,omitempty"`
	CountryCodes        []string          `json:"countryCodes,omitempty"`
	Children            []RawNode         `json:"children,omitempty"`
}

// DateLayout is the persisted date format for season and stage time ranges.
const DateLayout = "2006-01-02"
