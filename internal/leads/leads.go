// Package leads validates captured leads and classifies lead scores.
package leads

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
)

// Tier breakpoints. Fixed constants, not configurable per call.
const (
	hotThreshold  = 80
	warmThreshold = 50
	coolThreshold = 20
)

var emailShape = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// disposableDomains is the denylist of throwaway email providers.
var disposableDomains = map[string]bool{
	"mailinator.com":         true,
	"guerrillamail.com":      true,
	"tempmail.com":           true,
	"throwaway.email":        true,
	"yopmail.com":            true,
	"sharklasers.com":        true,
	"guerrillamailblock.com": true,
}

// Validate checks a lead before scoring. Returns human-readable issues;
// an empty slice means the lead may proceed to the scorer.
func Validate(lead domain.Lead) []string {
	var issues []string

	if !emailShape.MatchString(lead.Email) {
		issues = append(issues, "Invalid email format")
	}

	if domainPart := emailDomain(lead.Email); domainPart != "" && disposableDomains[domainPart] {
		issues = append(issues, fmt.Sprintf("Disposable email domain: %s", domainPart))
	}

	if lead.Name == "" {
		issues = append(issues, "Missing name")
	}

	return issues
}

// TierFor maps a 0-100 score to its tier.
func TierFor(score int) domain.Tier {
	switch {
	case score >= hotThreshold:
		return domain.TierHot
	case score >= warmThreshold:
		return domain.TierWarm
	case score >= coolThreshold:
		return domain.TierCool
	default:
		return domain.TierLow
	}
}

// RouteStatus derives the queue status for a tier: actionable tiers enter
// the active queue as "new", the rest are parked as "passive".
func RouteStatus(tier domain.Tier) domain.Status {
	if tier.Actionable() {
		return domain.StatusNew
	}
	return domain.StatusPassive
}

// Cadence returns the follow-up schedule for a tier. Unknown tiers fall
// back to the cool cadence.
func Cadence(tier domain.Tier) []domain.CadenceStep {
	steps, ok := cadences[tier]
	if !ok {
		return cadences[domain.TierCool]
	}
	return steps
}

var cadences = map[domain.Tier][]domain.CadenceStep{
	domain.TierHot: {
		{Day: 0, Type: "personalized_email"},
		{Day: 1, Type: "value_add_email"},
		{Day: 3, Type: "case_study_email"},
		{Day: 7, Type: "last_chance_email"},
	},
	domain.TierWarm: {
		{Day: 1, Type: "personalized_email"},
		{Day: 3, Type: "value_add_email"},
		{Day: 7, Type: "case_study_email"},
		{Day: 14, Type: "last_chance_email"},
	},
	domain.TierCool: {
		{Day: 3, Type: "personalized_email"},
		{Day: 7, Type: "value_add_email"},
		{Day: 14, Type: "case_study_email"},
		{Day: 30, Type: "last_chance_email"},
	},
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
