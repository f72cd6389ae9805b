package domain

type NodeKind string

const (
	KindCategory NodeKind = "category"
	KindStage    NodeKind = "stage"
	KindSeason   NodeKind = "season"
)

// ValidNodeKinds is the canonical set of accepted node kind strings.
var ValidNodeKinds = map[string]bool{
	"category": true, "stage": true, "season": true,
}

// CanContain reports whether a node of kind k may hold a child of kind child.
// Category holds categories and stages, Stage holds seasons, Season is a leaf.
func (k NodeKind) CanContain(child NodeKind) bool {
	switch k {
	case KindCategory:
		return child == KindCategory || child == KindStage
	case KindStage:
		return child == KindSeason
	default:
		return false
	}
}

type Gender string

const (
	GenderNone   Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderMixed  Gender = "mixed"
)

// ValidGenders is the canonical set of accepted gender strings.
var ValidGenders = map[string]bool{
	"": true, "male": true, "female": true, "mixed": true,
}

// TitleSuffix is the marker appended to a node title for the gender.
func (g Gender) TitleSuffix() string {
	switch g {
	case GenderFemale:
		return " (W)"
	case GenderMixed:
		return " (Mixed)"
	default:
		return ""
	}
}

// FlagVariant names one of the image variants a category flag is published in.
type FlagVariant string

const (
	FlagFlat   FlagVariant = "flat"
	FlagRound  FlagVariant = "round"
	FlagSquare FlagVariant = "square"
	FlagWavy   FlagVariant = "wavy"
)

// FlagVariants lists every variant in display order.
var FlagVariants = []FlagVariant{FlagFlat, FlagRound, FlagSquare, FlagWavy}

// ValidFlagVariant reports whether v is one of the known variants.
func ValidFlagVariant(v string) bool {
	for _, fv := range FlagVariants {
		if string(fv) == v {
			return true
		}
	}
	return false
}
