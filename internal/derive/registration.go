package derive

import (
	"fmt"
	"strings"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/parse"
)

// RegistrationKind classifies a camp's registration state.
type RegistrationKind string

// Registration kinds.
const (
	RegOpen     RegistrationKind = "open"
	RegUpcoming RegistrationKind = "upcoming"
	RegWaitlist RegistrationKind = "waitlist"
	RegClosed   RegistrationKind = "closed"
	RegUnknown  RegistrationKind = "unknown"
)

// Registration severities.
const (
	SeverityCritical = "critical"
	SeverityInfo     = "info"
)

// criticalWindowDays is how soon an opening must be to flag it critical.
const criticalWindowDays = 7

// Registration is the derived registration-urgency view for one camp.
type Registration struct {
	Kind      RegistrationKind `json:"kind"`
	DaysUntil int              `json:"days_until,omitempty"`
	Label     string           `json:"label,omitempty"`
	Severity  string           `json:"severity,omitempty"`
}

// CampRegistration derives a registration status tag for a camp as of now.
// Sources are tried in order: a parsed registration-opens date, then
// free-text status keywords, then the first month-day pair in the free-text
// registration date. Text none of these can read yields kind "unknown"; an
// opening date that has already passed reports "open".
func CampRegistration(camp *domain.Camp, now time.Time) Registration {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if opens, ok := camp.RegOpens.Time(); ok {
		return fromOpensDate(opens, today)
	}

	if kind, ok := statusKeyword(camp.RegStatus); ok {
		return Registration{Kind: kind, Label: keywordLabel(kind), Severity: SeverityInfo}
	}

	if opens, ok := parse.MonthDay(camp.RegDate, today.Year()); ok {
		return fromOpensDate(opens, today)
	}

	return Registration{Kind: RegUnknown}
}

func fromOpensDate(opens, today time.Time) Registration {
	days := int(opens.Sub(today).Hours() / 24)
	if days <= 0 {
		return Registration{Kind: RegOpen, Label: "Registration open", Severity: SeverityInfo}
	}

	severity := SeverityInfo
	if days <= criticalWindowDays {
		severity = SeverityCritical
	}
	return Registration{
		Kind:      RegUpcoming,
		DaysUntil: days,
		Label:     fmt.Sprintf("Opens %s", opens.Format("Jan 2")),
		Severity:  severity,
	}
}

func statusKeyword(status string) (RegistrationKind, bool) {
	s := strings.ToLower(status)
	if s == "" {
		return RegUnknown, false
	}
	switch {
	case strings.Contains(s, "waitlist"):
		return RegWaitlist, true
	case strings.Contains(s, "closed"), strings.Contains(s, "full"):
		return RegClosed, true
	case strings.Contains(s, "open"), strings.Contains(s, "now"), strings.Contains(s, "rolling"):
		return RegOpen, true
	}
	return RegUnknown, false
}

func keywordLabel(kind RegistrationKind) string {
	switch kind {
	case RegOpen:
		return "Registration open"
	case RegWaitlist:
		return "Waitlist"
	case RegClosed:
		return "Registration closed"
	default:
		return ""
	}
}
