package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornell-covid-modeling/tracenet/schema"
)

// ============================================================================
// CSV HELPER TESTS
// ============================================================================

var nodesCSV = []byte(`id,case,date,building,group_1
0,,,Mews Hall,team_a
1,101,2026-02-10,Gates Hall,team_a
2,,,,
not-a-number,102,2026-02-11,Day Hall,
3,103,10 Feb 2026,Day Hall,
`)

func nodesSchema(t *testing.T) schema.Config {
	t.Helper()
	sch, err := schema.DiscoverFromCSV(nodesCSV)
	require.NoError(t, err)
	return *sch
}

func TestParseNodesCSV(t *testing.T) {
	people, err := ParseNodesCSV(nodesCSV, nodesSchema(t))
	require.NoError(t, err)
	require.Len(t, people, 4, "row with unparseable id is skipped")

	assert.Equal(t, int64(0), people[0].ID)
	assert.False(t, people[0].IsCase())
	assert.Equal(t, "team_a", people[0].Group("group_1"))
	assert.Equal(t, "Mews Hall", people[0].Attrs["building"])

	assert.Equal(t, "101", people[1].Case)
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), people[1].TestDate)

	assert.Empty(t, people[2].Groups, "blank group cells are not memberships")
	assert.Empty(t, people[2].Attrs)

	assert.True(t, people[3].TestDate.IsZero(), "unrecognized date leaves the test date unset")
	assert.Equal(t, "103", people[3].Case)
}

var edgesCSV = []byte(`source,target,note
0,1,roommates
1,2,
oops,3,
2,
3,0,lab partners
`)

func TestParseEdgesCSV(t *testing.T) {
	contacts, err := ParseEdgesCSV(edgesCSV)
	require.NoError(t, err)

	require.Len(t, contacts, 3, "malformed rows are skipped")
	assert.Equal(t, int64(0), contacts[0].Source)
	assert.Equal(t, int64(1), contacts[0].Target)
	assert.Equal(t, int64(3), contacts[2].Source)
}

func TestParseEdgesCSVMissingColumns(t *testing.T) {
	_, err := ParseEdgesCSV([]byte("a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestParseEdgesCSVAltHeaders(t *testing.T) {
	contacts, err := ParseEdgesCSV([]byte("From,To\n4,5\n"))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, int64(4), contacts[0].Source)
	assert.Equal(t, int64(5), contacts[0].Target)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2026-02-10", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), true},
		{"2026-02-10T09:30:00Z", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), true},
		{"02/10/2026", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if !tt.ok {
			assert.Error(t, err, "ParseDate(%q)", tt.input)
			continue
		}
		require.NoError(t, err, "ParseDate(%q)", tt.input)
		assert.Equal(t, tt.want, got, "ParseDate(%q)", tt.input)
	}
}
