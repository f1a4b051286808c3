// Package calendar assigns publish dates to planned content.
//
// Cadence is a fixed set of publish weekdays (Mon/Wed/Fri by default).
// Pillar articles are spaced at least seven days apart, even when that
// skips cadence slots.
package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/ceddto100/SEO-LEAD/internal/domain"
)

// DefaultPublishWeekdays is the Mon/Wed/Fri publishing cadence.
var DefaultPublishWeekdays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

const pillarSpacing = 7 * 24 * time.Hour

// Build maps plan items to calendar entries with publish dates.
//
// Items are scheduled in ascending (priority, keyword) order: lower priority
// numbers first, keyword breaking ties lexicographically. The returned entries
// keep that order. Pure function; start is truncated to a date.
func Build(items []domain.ContentPlanItem, start time.Time, weekdays []time.Weekday) []domain.CalendarEntry {
	if len(weekdays) == 0 {
		weekdays = DefaultPublishWeekdays
	}

	sorted := make([]domain.ContentPlanItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].Keyword < sorted[j].Keyword
	})

	cursor := NextPublishDay(truncate(start), weekdays)
	var lastPillar time.Time
	havePillar := false

	entries := make([]domain.CalendarEntry, 0, len(sorted))
	for _, item := range sorted {
		if item.IsPillar() && havePillar {
			minDate := lastPillar.Add(pillarSpacing)
			if cursor.Before(minDate) {
				cursor = NextPublishDay(minDate, weekdays)
			}
		}

		publishDate := cursor
		if item.IsPillar() {
			lastPillar = publishDate
			havePillar = true
		}

		entries = append(entries, entryFor(item, publishDate))

		cursor = NextPublishDay(publishDate.AddDate(0, 0, 1), weekdays)
	}

	return entries
}

// NextPublishDay finds the first date on or after dt whose weekday is in the
// cadence. Scans at most seven days; with a non-empty cadence a hit is
// guaranteed, so the fallthrough return never triggers in practice.
func NextPublishDay(dt time.Time, weekdays []time.Weekday) time.Time {
	for offset := 0; offset < 7; offset++ {
		candidate := dt.AddDate(0, 0, offset)
		for _, wd := range weekdays {
			if candidate.Weekday() == wd {
				return candidate
			}
		}
	}
	return dt
}

// Slugify formats a keyword as a URL slug: lowercased, spaces to hyphens,
// apostrophes stripped.
func Slugify(keyword string) string {
	slug := strings.ToLower(keyword)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "'", "")
	return slug
}

func entryFor(item domain.ContentPlanItem, date time.Time) domain.CalendarEntry {
	title := item.Title
	if title == "" {
		title = item.Keyword
	}
	if title == "" {
		title = "Untitled"
	}
	contentType := item.ContentType
	if contentType == "" {
		contentType = "blog post"
	}
	wordCount := item.WordCount
	if wordCount == 0 {
		wordCount = 2000
	}
	priority := item.Priority
	if priority == 0 {
		priority = 5
	}
	pillarOrCluster := item.PillarOrCluster
	if pillarOrCluster == "" {
		pillarOrCluster = domain.Cluster
	}
	keyword := item.Keyword
	if keyword == "" {
		keyword = "untitled"
	}

	return domain.CalendarEntry{
		Title:           title,
		Keyword:         item.Keyword,
		Type:            contentType,
		WordCount:       wordCount,
		PublishDate:     date,
		Status:          domain.StatusPlanned,
		Priority:        priority,
		PillarOrCluster: pillarOrCluster,
		Slug:            Slugify(keyword),
		MetaDescription: item.MetaDescription,
		InternalLinks:   item.InternalLinks,
	}
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
