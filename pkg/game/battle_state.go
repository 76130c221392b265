package game

import "github.com/decker502/felisbattle/pkg/config"

// 状态栏文字
const (
	// StatusChooseAction 战斗画面创建后的初始提示
	StatusChooseAction = "Choose your action..."
	// StatusBattleStarted 战斗开始提示
	StatusBattleStarted = "Battle Started!"
	// StatusEnemyDefeated 敌人被击败
	StatusEnemyDefeated = "Enemy defeated!"
)

// BattleState 一场战斗的全部可变状态
//
// 由 CombatScreen 独占；外部只能通过 CombatScreen.State() 获取快照。
// 不变量：0 <= PlayerHP, EnemyHP <= config.CombatantMaxHP。
type BattleState struct {
	PlayerHP      int
	EnemyHP       int
	EnemyDefeated bool
	CombatActive  bool
	StatusText    string

	// SelectedBackground 当前背景索引（0..config.BackgroundCount-1）
	// 战斗之间保留，由设置持久化
	SelectedBackground int

	// SkillsEnabled 三个技能输入是否可用（结算期间和敌人倒下后为 false）
	SkillsEnabled bool
	// RetaliationPending 已有一次未执行的敌人反击
	RetaliationPending bool
}

// NewBattleState 创建初始状态（满血，战斗未开始）
func NewBattleState() *BattleState {
	return &BattleState{
		PlayerHP:      config.CombatantMaxHP,
		EnemyHP:       config.CombatantMaxHP,
		StatusText:    StatusChooseAction,
		SkillsEnabled: true,
	}
}

// Reset 开始新一场战斗：双方满血，清除击败标记和待执行的反击
// 背景选择保持不变
func (s *BattleState) Reset() {
	s.PlayerHP = config.CombatantMaxHP
	s.EnemyHP = config.CombatantMaxHP
	s.EnemyDefeated = false
	s.StatusText = StatusBattleStarted
	s.SkillsEnabled = true
	s.RetaliationPending = false
}

// DamageEnemy 扣除敌人生命值（下限为 0），返回扣除后的生命值
func (s *BattleState) DamageEnemy(damage int) int {
	s.EnemyHP = clampHP(s.EnemyHP - damage)
	return s.EnemyHP
}

// DamagePlayer 扣除玩家生命值（下限为 0），返回扣除后的生命值
func (s *BattleState) DamagePlayer(damage int) int {
	s.PlayerHP = clampHP(s.PlayerHP - damage)
	return s.PlayerHP
}

// CanCast 出招的战斗前置条件：战斗进行中且双方生命值都大于 0
// 技能动画是否正在播放、按钮是否可用由调用方另行检查
func (s *BattleState) CanCast() bool {
	return s.CombatActive && !s.EnemyDefeated && s.EnemyHP > 0 && s.PlayerHP > 0
}

// clampHP 将生命值限制在 [0, CombatantMaxHP]
func clampHP(hp int) int {
	if hp < 0 {
		return 0
	}
	if hp > config.CombatantMaxHP {
		return config.CombatantMaxHP
	}
	return hp
}
