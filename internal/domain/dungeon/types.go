// Package dungeon holds the client-side view of the dungeon server's data:
// catalog entries, the player's selection and created dungeon instances.
package dungeon

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DungeonSummary is a selectable dungeon template from the server catalog.
type DungeonSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConfigSummary is a selectable configuration profile from the server catalog.
type ConfigSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Label returns the display name, falling back to the ID.
func (s DungeonSummary) Label() string { return label(s.ID, s.Name) }

// Label returns the display name, falling back to the ID.
func (s ConfigSummary) Label() string { return label(s.ID, s.Name) }

// UnmarshalJSON accepts a bare string ("maze") or an {"id","name"} object.
func (s *DungeonSummary) UnmarshalJSON(data []byte) error {
	id, name, err := decodeSummary(data)
	if err != nil {
		return fmt.Errorf("decode dungeon summary: %w", err)
	}
	s.ID, s.Name = id, name
	return nil
}

// UnmarshalJSON accepts a bare string or an {"id","name"} object.
func (s *ConfigSummary) UnmarshalJSON(data []byte) error {
	id, name, err := decodeSummary(data)
	if err != nil {
		return fmt.Errorf("decode config summary: %w", err)
	}
	s.ID, s.Name = id, name
	return nil
}

func decodeSummary(data []byte) (id, name string, err error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &id); err != nil {
			return "", "", err
		}
		return id, id, nil
	}

	var obj struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", "", err
	}
	if obj.Name == "" {
		obj.Name = obj.ID
	}
	return obj.ID, obj.Name, nil
}

func label(id, name string) string {
	if name != "" {
		return name
	}
	return id
}

// Selection is the pair of catalog ids picked in the new game dialog.
// Either field may be empty until the player picks it.
type Selection struct {
	DungeonID string `json:"dungeonId"`
	ConfigID  string `json:"configId"`
}

// Complete reports whether both ids are present.
func (s Selection) Complete() bool {
	return s.DungeonID != "" && s.ConfigID != ""
}

// ContainsDungeon reports whether id is one of the given dungeons.
func ContainsDungeon(dungeons []DungeonSummary, id string) bool {
	for _, d := range dungeons {
		if d.ID == id {
			return true
		}
	}
	return false
}

// ContainsConfig reports whether id is one of the given configs.
func ContainsConfig(configs []ConfigSummary, id string) bool {
	for _, c := range configs {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CompactDungeons drops entries without an id, such as null elements in a
// catalog response. The empty id means "nothing selected".
func CompactDungeons(dungeons []DungeonSummary) []DungeonSummary {
	out := dungeons[:0:0]
	for _, d := range dungeons {
		if d.ID != "" {
			out = append(out, d)
		}
	}
	return out
}

// CompactConfigs drops entries without an id.
func CompactConfigs(configs []ConfigSummary) []ConfigSummary {
	out := configs[:0:0]
	for _, c := range configs {
		if c.ID != "" {
			out = append(out, c)
		}
	}
	return out
}
