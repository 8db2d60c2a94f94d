package state

import (
	"github.com/okian/habitat/internal/domain/catalog"
	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/presentation"
	"github.com/okian/habitat/internal/domain/technology"
)

// View is everything the calculator displays for a State. It is derived
// fresh on every call.
type View struct {
	State        State                    `json:"state"`
	Assessment   habitability.Assessment  `json:"assessment"`
	ColorTier    presentation.ColorTier   `json:"colorTier"`
	MessageTier  presentation.MessageTier `json:"messageTier"`
	Rendering    presentation.Rendering   `json:"rendering"`
	Technologies []technology.Technology  `json:"technologies"`
}

// Derive computes the view of s against the catalog's technologies.
func Derive(s State, c *catalog.Catalog) View {
	a := habitability.Evaluate(s.Parameters)
	v := View{
		State:        s,
		Assessment:   a,
		ColorTier:    presentation.ColorTierFor(a.Score),
		MessageTier:  presentation.MessageTierFor(a.Score),
		Rendering:    presentation.Render(s.Parameters, a.Score),
		Technologies: []technology.Technology{},
	}
	if c != nil {
		v.Technologies = technology.Filter(c.Technologies(), s.Parameters)
	}
	return v
}
