package domain

// Tier classifies a lead score into an actionable bucket.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCool Tier = "cool"
	TierLow  Tier = "low"
)

// Actionable reports whether the tier warrants immediate follow-up.
// Hot and warm leads route to the "new" queue; cool and low to "passive".
func (t Tier) Actionable() bool {
	return t == TierHot || t == TierWarm
}

// Lead is a captured prospect from a lead magnet or form.
type Lead struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Company    string `json:"company"`
	Source     string `json:"source"`
	LeadMagnet string `json:"lead_magnet"`
	Phone      string `json:"phone,omitempty"`
}

// LeadScore is the scoring verdict for a validated lead.
type LeadScore struct {
	Score             int    `json:"score"`
	Tier              Tier   `json:"tier"`
	Reasoning         string `json:"reasoning"`
	RecommendedAction string `json:"recommended_action"`
	Segment           string `json:"segment"`
}

// CadenceStep is one touch in a follow-up sequence.
type CadenceStep struct {
	Day  int    `json:"day"`
	Type string `json:"type"`
}

// FollowUpEmail is a generated follow-up message for a lead.
type FollowUpEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	CTAType string `json:"cta_type"`
	CTALink string `json:"cta_link"`
}
