package domain

// TrafficSource is one acquisition channel in an analytics snapshot.
type TrafficSource struct {
	Medium   string `json:"medium"`
	Sessions int    `json:"sessions"`
}

// AnalyticsSnapshot is a daily traffic pull from the analytics provider.
type AnalyticsSnapshot struct {
	Sessions    int             `json:"sessions"`
	Users       int             `json:"users"`
	BounceRate  float64         `json:"bounce_rate"`
	Conversions int             `json:"conversions"`
	Sources     []TrafficSource `json:"sources"`
}

// KeywordRanking is one search-console row for a tracked keyword.
type KeywordRanking struct {
	Keyword     string  `json:"keyword"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
	Page        string  `json:"page"`
}

// LeadStats summarizes lead capture over the reporting window.
type LeadStats struct {
	NewLeads int     `json:"new_leads"`
	AvgScore float64 `json:"avg_score"`
}

// EmailStats summarizes email sequence performance.
type EmailStats struct {
	Sent      int     `json:"sent"`
	OpenRate  float64 `json:"open_rate"`
	ClickRate float64 `json:"click_rate"`
}

// PagePerformance describes one page in the feedback-loop input.
type PagePerformance struct {
	URL      string   `json:"url"`
	Keyword  string   `json:"keyword"`
	Sessions int      `json:"sessions"`
	Decline  string   `json:"decline"`
	Actions  []string `json:"actions"`
}

// UnderperformerFix is a remediation suggestion for a weak page.
type UnderperformerFix struct {
	URL     string   `json:"url"`
	Issues  []string `json:"issues"`
	Actions []string `json:"actions"`
}

// KeywordAdjustments carries new target keywords out of the analysis.
type KeywordAdjustments struct {
	NewTargets []string `json:"new_targets"`
}

// PerformanceAnalysis is the feedback-loop verdict over site performance.
type PerformanceAnalysis struct {
	RefreshCandidates    []PagePerformance   `json:"refresh_candidates"`
	UnderperformerFixes  []UnderperformerFix `json:"underperformer_fixes"`
	KeywordAdjustments   KeywordAdjustments  `json:"keyword_adjustments"`
	TopPerformerInsights map[string]string   `json:"top_performer_insights"`
}

// PerformanceReport is the periodic report for weekly/monthly analytics runs.
type PerformanceReport struct {
	Highlights      []string `json:"highlights"`
	Concerns        []string `json:"concerns"`
	Recommendations []string `json:"recommendations"`
}
