package derive

import (
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/parse"
)

// WorkFit is the derived work-hour compatibility view for one camp against
// the account's work window. Covers is nil when the camp's hours could not
// be parsed: the camp fails open so the UI can show "unknown" instead of
// silently excluding it. Effective times are minutes since midnight, -1 when
// unknown.
type WorkFit struct {
	Covers            *bool `json:"covers"`
	NeedsExtendedCare bool  `json:"needs_extended_care"`
	EffectiveDropOff  int   `json:"effective_drop_off"`
	EffectivePickUp   int   `json:"effective_pick_up"`
}

// CampWorkFit reports whether a camp's hours envelop the profile's work
// window. When the base hours fall short but the extended-care window
// envelops the work window, the camp still covers with
// needs_extended_care=true.
func CampWorkFit(camp *domain.Camp, profile *domain.Profile) WorkFit {
	unknown := WorkFit{EffectiveDropOff: -1, EffectivePickUp: -1}

	if profile == nil {
		return unknown
	}
	workStart, ok := parse.Clock(profile.WorkStart)
	if !ok {
		return unknown
	}
	workEnd, ok := parse.Clock(profile.WorkEnd)
	if !ok || workEnd <= workStart {
		return unknown
	}

	campStart, campEnd, ok := campHours(camp)
	if !ok {
		return unknown
	}

	fit := WorkFit{EffectiveDropOff: campStart, EffectivePickUp: campEnd}
	covers := campStart <= workStart && campEnd >= workEnd
	if !covers {
		if extStart, extEnd, extOK := parse.ClockRange(camp.ExtendedCare); extOK &&
			extStart <= workStart && extEnd >= workEnd {
			covers = true
			fit.NeedsExtendedCare = true
			fit.EffectiveDropOff = extStart
			fit.EffectivePickUp = extEnd
		}
	}
	fit.Covers = &covers
	return fit
}

// campHours resolves a camp's base day window, preferring the explicit
// drop-off/pick-up fields over the free-text hours string.
func campHours(camp *domain.Camp) (start, end int, ok bool) {
	dropOff, dropOK := parse.Clock(camp.DropOff)
	pickUp, pickOK := parse.Clock(camp.PickUp)
	if dropOK && pickOK && dropOff < pickUp {
		return dropOff, pickUp, true
	}
	return parse.ClockRange(camp.Hours)
}
