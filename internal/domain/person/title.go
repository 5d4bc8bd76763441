package person

import "time"

// TitleType classifies a PersonTitle. Titles are tracked separately from
// PersonName and never embedded in it.
type TitleType string

const (
	TitleAcademic     TitleType = "academic"
	TitleProfessional TitleType = "professional"
	TitleNoble        TitleType = "noble"
	TitleHonorary     TitleType = "honorary"
	TitleMilitary     TitleType = "military"
	TitleReligious    TitleType = "religious"
	TitleOther        TitleType = "other"
)

// Title is the PersonTitle value object of spec.md §3.
type Title struct {
	Title            string
	Type             TitleType
	AwardedDate      *time.Time
	RevokedDate      *time.Time
	ExpiryDate       *time.Time
	IssuingAuthority *string
}

// ValidOn reports whether the title holds on day d:
// awarded_date ≤ d < min(revoked_date, expiry_date).
func (t Title) ValidOn(d time.Time) bool {
	if t.AwardedDate == nil || d.Before(*t.AwardedDate) {
		return false
	}
	end := t.RevokedDate
	if t.ExpiryDate != nil && (end == nil || t.ExpiryDate.Before(*end)) {
		end = t.ExpiryDate
	}
	if end != nil && !d.Before(*end) {
		return false
	}
	return true
}
