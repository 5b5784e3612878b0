package dungeon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_Complete(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want bool
	}{
		{"both present", Selection{DungeonID: "maze", ConfigID: "simple"}, true},
		{"dungeon missing", Selection{ConfigID: "simple"}, false},
		{"config missing", Selection{DungeonID: "maze"}, false},
		{"both missing", Selection{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.Complete())
		})
	}
}

func TestDungeonSummary_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   string
		wantName string
	}{
		{"bare string", `"maze"`, "maze", "maze"},
		{"object with name", `{"id":"d_1","name":"Boulders"}`, "d_1", "Boulders"},
		{"object without name", `{"id":"d_2"}`, "d_2", "d_2"},
		{"padded string", "  \"advanced\" ", "advanced", "advanced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s DungeonSummary
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.wantID, s.ID)
			assert.Equal(t, tt.wantName, s.Name)
		})
	}
}

func TestConfigSummary_UnmarshalJSON_List(t *testing.T) {
	var configs []ConfigSummary
	require.NoError(t, json.Unmarshal([]byte(`["simple", {"id":"c_hard","name":"Hard"}]`), &configs))

	require.Len(t, configs, 2)
	assert.Equal(t, ConfigSummary{ID: "simple", Name: "simple"}, configs[0])
	assert.Equal(t, ConfigSummary{ID: "c_hard", Name: "Hard"}, configs[1])
}

func TestSummary_UnmarshalJSON_Invalid(t *testing.T) {
	var d DungeonSummary
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))

	var c ConfigSummary
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &c))
}

func TestSummary_Label(t *testing.T) {
	assert.Equal(t, "Boulders", DungeonSummary{ID: "d_1", Name: "Boulders"}.Label())
	assert.Equal(t, "d_1", DungeonSummary{ID: "d_1"}.Label())
	assert.Equal(t, "c_1", ConfigSummary{ID: "c_1"}.Label())
}

func TestContains(t *testing.T) {
	dungeons := []DungeonSummary{{ID: "D1"}, {ID: "D2"}}
	configs := []ConfigSummary{{ID: "C1"}}

	assert.True(t, ContainsDungeon(dungeons, "D2"))
	assert.False(t, ContainsDungeon(dungeons, "D3"))
	assert.False(t, ContainsDungeon(nil, "D1"))
	assert.True(t, ContainsConfig(configs, "C1"))
	assert.False(t, ContainsConfig(configs, ""))
}

func TestCompact(t *testing.T) {
	var dungeons []DungeonSummary
	require.NoError(t, json.Unmarshal([]byte(`["D1", null, {"name":"no id"}, "D2"]`), &dungeons))
	require.Len(t, dungeons, 4)

	assert.Equal(t, []DungeonSummary{{ID: "D1", Name: "D1"}, {ID: "D2", Name: "D2"}}, CompactDungeons(dungeons))
	assert.Equal(t, []ConfigSummary{{ID: "C1"}}, CompactConfigs([]ConfigSummary{{}, {ID: "C1"}}))
	assert.Empty(t, CompactDungeons(nil))
}
