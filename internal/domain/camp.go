package domain

// PlaceholderCampName is substituted when a scheduled item or interest
// references a camp no longer present in the catalog.
const PlaceholderCampName = "Unknown Camp"

// Camp describes one entry in the externally managed camp directory.
// Camps are read-only within the core and referenced by id. Most descriptive
// fields arrive as free text from camp websites and are parsed on demand.
type Camp struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	MinAge          int    `json:"min_age"`
	MaxAge          int    `json:"max_age"`
	MinPrice        int    `json:"min_price"` // integer dollars per week
	MaxPrice        int    `json:"max_price"`
	Hours           string `json:"hours"`         // e.g. "9am-3pm"
	DropOff         string `json:"drop_off"`      // earliest drop-off, e.g. "8:45am"
	PickUp          string `json:"pick_up"`       // latest pick-up, e.g. "3:30pm"
	ExtendedCare    string `json:"extended_care"` // e.g. "7:30am-6pm", empty if none
	FoodIncluded    bool   `json:"food_included"`
	Transport       bool   `json:"transport"`
	SiblingDiscount bool   `json:"sibling_discount"`
	RegOpens        Date   `json:"registration_opens,omitempty"` // ISO date when known
	RegStatus       string `json:"reg_status,omitempty"`         // free text, e.g. "Rolling admission"
	RegDate         string `json:"reg_date,omitempty"`           // free text, e.g. "March 15"
	Address         string `json:"address,omitempty"`
	Website         string `json:"website,omitempty"`
}

// PlaceholderCamp returns the stand-in used for dangling camp references.
func PlaceholderCamp(id string) *Camp {
	return &Camp{ID: id, Name: PlaceholderCampName}
}

// IsPlaceholder reports whether this camp is a dangling-reference stand-in.
func (c *Camp) IsPlaceholder() bool {
	return c.Name == PlaceholderCampName
}

// FitsAge reports whether a child of the given age is within the camp's
// advertised range. A zero MaxAge means no upper bound was published.
func (c *Camp) FitsAge(age int) bool {
	if age < c.MinAge {
		return false
	}
	return c.MaxAge == 0 || age <= c.MaxAge
}
