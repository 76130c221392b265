package components

// Side 战斗阵营
type Side int

const (
	// SidePlayer 玩家（Felis）
	SidePlayer Side = iota
	// SideEnemy 敌人（Browney）
	SideEnemy
)

// String 返回阵营名称（日志使用）
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// CombatantComponent 标记战斗者实体（玩家或敌人的待机精灵）
// 生命值保存在 game.BattleState 中，这里只描述显示相关的数据
type CombatantComponent struct {
	Side    Side
	Name    string // 角色名，如 "Felis"
	HPLabel string // 血条标签，如 "Player"
}
