package metadata

// 以下常量用于 metadata 表的 key 列
const (
	// GameConfigKey 存储 GameConfig 的JSON文档
	GameConfigKey = "game_config"
)
