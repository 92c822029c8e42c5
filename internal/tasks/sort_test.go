package tasks

import (
	"testing"

	"github.com/timely-planner/timely-tui/internal/api"
)

func ids(tasks []api.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		by    SortBy
		tasks []api.Task
		want  []string
	}{
		{
			name: "date ascending",
			by:   SortByDate,
			tasks: []api.Task{
				{ID: "c", DueDate: "2025-03-01"},
				{ID: "a", DueDate: "2025-01-01"},
				{ID: "b", DueDate: "2025-02-01"},
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "title case breaks ties",
			by:   SortByTitle,
			tasks: []api.Task{
				{ID: "upper", Title: "Apple"},
				{ID: "lower", Title: "apple"},
				{ID: "next", Title: "apples"},
			},
			want: []string{"lower", "upper", "next"},
		},
		{
			name: "date ties keep input order",
			by:   SortByDate,
			tasks: []api.Task{
				{ID: "second", DueDate: "2025-01-01"},
				{ID: "first", DueDate: "2025-01-01"},
				{ID: "early", DueDate: "2024-12-31"},
			},
			want: []string{"early", "second", "first"},
		},
		{
			name: "unparseable dates last",
			by:   SortByDate,
			tasks: []api.Task{
				{ID: "bad", DueDate: "soon"},
				{ID: "ok", DueDate: "2025-01-01"},
				{ID: "empty"},
			},
			want: []string{"ok", "bad", "empty"},
		},
		{
			name: "timestamps compare with dates",
			by:   SortByDate,
			tasks: []api.Task{
				{ID: "late", DueDate: "2025-01-02"},
				{ID: "ts", DueDate: "2025-01-01T10:00:00Z"},
			},
			want: []string{"ts", "late"},
		},
		{
			name: "title letters before case",
			by:   SortByTitle,
			tasks: []api.Task{
				{ID: "c", Title: "cherry"},
				{ID: "a", Title: "apple"},
				{ID: "b", Title: "Banana"},
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "cyrillic titles",
			by:   SortByTitle,
			tasks: []api.Task{
				{ID: "v", Title: "Встреча"},
				{ID: "a", Title: "Автобус"},
				{ID: "b", Title: "Билеты"},
			},
			want: []string{"a", "b", "v"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Sort(tt.tasks, tt.by)
			if got := ids(tt.tasks); !equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGroupByCategory(t *testing.T) {
	items := []api.Task{
		{ID: "w2", Category: "Работа", DueDate: "2025-02-01"},
		{ID: "n1", DueDate: "2025-01-01"},
		{ID: "h1", Category: "Домашний", DueDate: "2025-01-05"},
		{ID: "w1", Category: "Работа", DueDate: "2025-01-01"},
		{ID: "x1", Category: "Другое", DueDate: "2025-01-03"},
	}

	groups := GroupByCategory(items, SortByDate)

	wantOrder := []api.Category{api.CategoryWork, api.CategoryHome, api.CategoryNone}
	if len(groups) != len(wantOrder) {
		t.Fatalf("expected %d groups, got %d", len(wantOrder), len(groups))
	}
	for i, g := range groups {
		if g.Category != wantOrder[i] {
			t.Errorf("group %d: expected %s, got %s", i, wantOrder[i], g.Category)
		}
	}

	if got := ids(groups[0].Tasks); !equal(got, []string{"w1", "w2"}) {
		t.Errorf("expected work tasks sorted by date, got %v", got)
	}
	if got := ids(groups[2].Tasks); !equal(got, []string{"n1", "x1"}) {
		t.Errorf("expected missing and unknown categories together, got %v", got)
	}
}

func TestGroupByCategoryEmpty(t *testing.T) {
	if groups := GroupByCategory(nil, SortByTitle); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestSortByToggle(t *testing.T) {
	if SortByDate.Toggle() != SortByTitle || SortByTitle.Toggle() != SortByDate {
		t.Error("toggle must alternate between date and title")
	}
	if ParseSortBy("title") != SortByTitle || ParseSortBy("bogus") != SortByDate {
		t.Error("unexpected ParseSortBy result")
	}
}
