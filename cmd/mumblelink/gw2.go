package main

// GW2Context is the context block Guild Wars 2 publishes through the link.
type GW2Context struct {
	ServerAddress   [28]byte `json:"server_address"`
	MapID           uint32   `json:"map_id"`
	MapType         uint32   `json:"map_type"`
	ShardID         uint32   `json:"shard_id"`
	Instance        uint32   `json:"instance"`
	BuildID         uint32   `json:"build_id"`
	UIState         uint32   `json:"ui_state"`
	CompassWidth    uint16   `json:"compass_width"`
	CompassHeight   uint16   `json:"compass_height"`
	CompassRotation float32  `json:"compass_rotation"`
	PlayerX         float32  `json:"player_x"`
	PlayerY         float32  `json:"player_y"`
	MapCenterX      float32  `json:"map_center_x"`
	MapCenterY      float32  `json:"map_center_y"`
	MapScale        float32  `json:"map_scale"`
	ProcessID       uint32   `json:"process_id"`
	MountIndex      uint8    `json:"mount_index"`
}

// UI state bits.
const (
	GW2MapOpen uint32 = 1 << iota
	GW2CompassTopRight
	GW2CompassRotation
	GW2GameFocus
	GW2CompetitiveMode
	GW2TextboxFocus
	GW2InCombat
)
