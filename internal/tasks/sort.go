package tasks

import (
	"sort"

	"github.com/timely-planner/timely-tui/internal/api"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortBy selects the ordering of the All view.
type SortBy string

const (
	SortByDate  SortBy = "date"
	SortByTitle SortBy = "title"
)

// Toggle returns the other sort mode.
func (s SortBy) Toggle() SortBy {
	if s == SortByTitle {
		return SortByDate
	}
	return SortByTitle
}

// ParseSortBy maps a config value to a SortBy, defaulting to date.
func ParseSortBy(s string) SortBy {
	if SortBy(s) == SortByTitle {
		return SortByTitle
	}
	return SortByDate
}

// Sort orders tasks in place. Date sorts ascending with unparseable dates
// last; title sorts with Russian collation. Ties keep their input order.
func Sort(tasks []api.Task, by SortBy) {
	switch by {
	case SortByTitle:
		c := collate.New(language.Russian)
		sort.SliceStable(tasks, func(i, j int) bool {
			return c.CompareString(tasks[i].Title, tasks[j].Title) < 0
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			di, okI := tasks[i].Due()
			dj, okJ := tasks[j].Due()
			if okI != okJ {
				return okI
			}
			return okI && di.Before(dj)
		})
	}
}

// Group is one category section of the All view.
type Group struct {
	Category api.Category
	Tasks    []api.Task
}

// GroupByCategory buckets tasks by category in the fixed display order and
// sorts each bucket. Empty buckets are omitted.
func GroupByCategory(tasks []api.Task, by SortBy) []Group {
	buckets := make(map[api.Category][]api.Task, len(api.Categories))
	for _, t := range tasks {
		c := t.CategoryValue()
		buckets[c] = append(buckets[c], t)
	}

	groups := make([]Group, 0, len(buckets))
	for _, c := range api.Categories {
		items := buckets[c]
		if len(items) == 0 {
			continue
		}
		Sort(items, by)
		groups = append(groups, Group{Category: c, Tasks: items})
	}
	return groups
}
