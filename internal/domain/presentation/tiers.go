// Package presentation derives display attributes from a habitability score
// and raw planet parameters. Nothing here feeds back into scoring.
//
// Two tier policies coexist on purpose: the five-band color policy used for
// the planet rendering and the three-band message policy used for the result
// banner. Their breakpoints differ and must not be merged.
package presentation

// Color policy breakpoints (inclusive lower bounds).
const (
	ColorHighlyHabitableMin     = 80
	ColorHabitableMin           = 60
	ColorModeratelyHabitableMin = 40
	ColorMarginallyHabitableMin = 20
)

// Message policy breakpoints (exclusive lower bounds).
const (
	MessagePotentiallyHabitableAbove = 70
	MessageModerateAbove             = 40
)

// ColorTier is a band of the five-tier color policy.
type ColorTier struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Color policy bands.
var (
	HighlyHabitable     = ColorTier{Name: "highly_habitable", Label: "highly habitable", Color: "#4CAF50"}
	Habitable           = ColorTier{Name: "habitable", Label: "habitable", Color: "#8BC34A"}
	ModeratelyHabitable = ColorTier{Name: "moderately_habitable", Label: "moderately habitable", Color: "#FFC107"}
	MarginallyHabitable = ColorTier{Name: "marginally_habitable", Label: "marginally habitable", Color: "#FF9800"}
	Uninhabitable       = ColorTier{Name: "uninhabitable", Label: "uninhabitable", Color: "#F44336"}
)

// ColorTierFor maps a score onto the five-tier color policy.
func ColorTierFor(score int) ColorTier {
	switch {
	case score >= ColorHighlyHabitableMin:
		return HighlyHabitable
	case score >= ColorHabitableMin:
		return Habitable
	case score >= ColorModeratelyHabitableMin:
		return ModeratelyHabitable
	case score >= ColorMarginallyHabitableMin:
		return MarginallyHabitable
	default:
		return Uninhabitable
	}
}

// Severity classes used by the message banner.
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// MessageTier is a band of the three-tier message policy.
type MessageTier struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Message policy bands.
var (
	PotentiallyHabitable = MessageTier{Name: "potentially_habitable", Severity: SeveritySuccess, Message: "Potentially habitable planet!"}
	Moderate             = MessageTier{Name: "moderate", Severity: SeverityWarning, Message: "Moderately habitable conditions"}
	NotHabitable         = MessageTier{Name: "not_habitable", Severity: SeverityError, Message: "Conditions not habitable for humans"}
)

// MessageTierFor maps a score onto the three-tier message policy.
func MessageTierFor(score int) MessageTier {
	switch {
	case score > MessagePotentiallyHabitableAbove:
		return PotentiallyHabitable
	case score > MessageModerateAbove:
		return Moderate
	default:
		return NotHabitable
	}
}

// ColorTiers lists the color policy bands from best to worst.
func ColorTiers() []ColorTier {
	return []ColorTier{HighlyHabitable, Habitable, ModeratelyHabitable, MarginallyHabitable, Uninhabitable}
}

// MessageTiers lists the message policy bands from best to worst.
func MessageTiers() []MessageTier {
	return []MessageTier{PotentiallyHabitable, Moderate, NotHabitable}
}
