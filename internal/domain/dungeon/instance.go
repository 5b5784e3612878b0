package dungeon

import "sort"

// Position is a tile coordinate. Layer orders entities drawn on the same tile.
type Position struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Layer int `json:"layer"`
}

// Entity is a single object placed in the dungeon.
type Entity struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Position       Position `json:"position"`
	IsInteractable bool     `json:"isInteractable"`
}

// Item is an inventory entry.
type Item struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Round is one exchange of blows in a battle.
type Round struct {
	DeltaPlayerHealth float64 `json:"deltaPlayerHealth"`
	DeltaEnemyHealth  float64 `json:"deltaEnemyHealth"`
}

// Battle records a fight the player took part in.
type Battle struct {
	Enemy               string  `json:"enemy"`
	InitialPlayerHealth float64 `json:"initialPlayerHealth"`
	InitialEnemyHealth  float64 `json:"initialEnemyHealth"`
	Rounds              []Round `json:"rounds"`
	BattleItems         []Item  `json:"battleItems"`
}

// Instance is a dungeon created by the server for a new game.
type Instance struct {
	DungeonID   string   `json:"dungeonId"`
	DungeonName string   `json:"dungeonName"`
	Entities    []Entity `json:"entities"`
	Inventory   []Item   `json:"inventory"`
	Battles     []Battle `json:"battles"`
	Buildables  []string `json:"buildables"`
	// Goals is empty once every goal has been achieved.
	Goals string `json:"goals"`
}

// GoalsComplete reports whether the server considers all goals achieved.
func (d *Instance) GoalsComplete() bool {
	return d.Goals == ""
}

// Bounds returns the inclusive tile bounds covering every entity.
// ok is false when the dungeon has no entities.
func (d *Instance) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	for i, e := range d.Entities {
		p := e.Position
		if i == 0 {
			minX, minY, maxX, maxY = p.X, p.Y, p.X, p.Y
			continue
		}
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY, len(d.Entities) > 0
}

// DrawOrder returns the entities sorted by layer, lowest first.
// Entities on the same layer keep their server order.
func (d *Instance) DrawOrder() []Entity {
	out := make([]Entity, len(d.Entities))
	copy(out, d.Entities)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position.Layer < out[j].Position.Layer
	})
	return out
}

// Player returns the player entity, if present.
func (d *Instance) Player() (Entity, bool) {
	for _, e := range d.Entities {
		if e.Type == "player" {
			return e, true
		}
	}
	return Entity{}, false
}
