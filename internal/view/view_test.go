package view

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func sample() []models.Note {
	return []models.Note{
		{ID: "4", Title: "", Text: "Consider info digestibility", Category: "Personal", Created: base.Add(4 * time.Hour)},
		{ID: "3", Title: "Narrative", Text: "Think what to share", Category: "School", Created: base.Add(3 * time.Hour)},
		{ID: "2", Title: "Dev Team", Text: "Get dev team involved early", Category: "Work", Created: base.Add(2 * time.Hour)},
		{ID: "1", Title: "Reminder", Text: "Create design brief", Category: "Work", Created: base.Add(time.Hour)},
	}
}

func ids(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"zero query keeps everything newest first", Query{}, []string{"4", "3", "2", "1"}},
		{"all notes sentinel", Query{Category: CategoryAll}, []string{"4", "3", "2", "1"}},
		{"short all sentinel", Query{Category: "All"}, []string{"4", "3", "2", "1"}},
		{"category filter", Query{Category: "Work"}, []string{"2", "1"}},
		{"category is exact", Query{Category: "work"}, []string{}},
		{"no matches", Query{Category: "Hobby"}, []string{}},
		{"search title case-insensitive", Query{Search: "dev TEAM"}, []string{"2"}},
		{"search text", Query{Search: "digest"}, []string{"4"}},
		{"search and category compose", Query{Category: "Work", Search: "brief"}, []string{"1"}},
		{"search and category exclude", Query{Category: "School", Search: "brief"}, []string{}},
		{"ascending", Query{Order: Asc}, []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sample(), tt.q)))
		})
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	in := sample()
	in[0], in[3] = in[3], in[0]
	before := ids(in)

	_ = Apply(in, Query{Order: Desc})
	_ = Apply(in, Query{Order: Asc, Category: "Work"})

	assert.Equal(t, before, ids(in))
}

func TestApply_EqualTimestampsKeepStoredOrder(t *testing.T) {
	in := []models.Note{
		{ID: "new", Created: base},
		{ID: "a", Created: base},
		{ID: "b", Created: base},
	}
	assert.Equal(t, []string{"new", "a", "b"}, ids(Apply(in, Query{})))
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{"": Desc, "desc": Desc, " ASC ": Asc, "asc": Asc} {
		got, err := ParseOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOrder("sideways")
	require.Error(t, err)

	assert.Equal(t, "asc", Asc.String())
	assert.Equal(t, "desc", Desc.String())
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"All Notes", "Work", "School", "Personal"}, Categories())
}
