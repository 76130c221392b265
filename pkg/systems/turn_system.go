package systems

import (
	"fmt"
	"log"

	"github.com/decker502/felisbattle/pkg/components"
	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/ecs"
	"github.com/decker502/felisbattle/pkg/game"
)

// RetaliationTimerName delay 模式下反击计时器的名称
const RetaliationTimerName = "enemy_retaliation"

// RandomSource 伤害随机数来源
// *rand.Rand 满足该接口；测试中注入固定值
type RandomSource interface {
	// Intn 返回 [0, n) 内的整数
	Intn(n int) int
}

// SoundPlayer 播放技能音效（*game.AudioManager 满足该接口）
type SoundPlayer interface {
	PlaySound(path string) bool
}

// TurnConfig 回合结算参数
type TurnConfig struct {
	EnemyName   string
	Retaliation config.RetaliationConfig
}

// TurnSystem 回合结算系统
//
// 负责玩家出招、伤害计算、敌人反击以及技能输入的禁用/恢复。
// 技能数据来自技能实体上的 SkillComponent，动画由 AnimationSystem 驱动。
//
// 反击只有一个触发源，由 TurnConfig.Retaliation.Trigger 决定：
//   - animation：玩家技能动画播放完毕时反击
//   - delay：出招后经过固定延迟反击（计时器实体）
type TurnSystem struct {
	entityManager *ecs.EntityManager
	state         *game.BattleState
	cfg           TurnConfig
	rng           RandomSource
	sounds        SoundPlayer

	// OnStateChanged 战斗状态变化后调用（用于请求重绘，可为 nil）
	OnStateChanged func()
}

// NewTurnSystem 创建回合结算系统
// sounds 可为 nil（不播放音效）
func NewTurnSystem(em *ecs.EntityManager, state *game.BattleState, cfg TurnConfig, rng RandomSource, sounds SoundPlayer) *TurnSystem {
	if cfg.EnemyName == "" {
		cfg.EnemyName = "Enemy"
	}
	return &TurnSystem{
		entityManager: em,
		state:         state,
		cfg:           cfg,
		rng:           rng,
		sounds:        sounds,
	}
}

// rollDamage 计算 base + [0, randomRange-1] 的伤害
func (s *TurnSystem) rollDamage(base, randomRange int) int {
	if randomRange <= 1 {
		return base
	}
	return base + s.rng.Intn(randomRange)
}

// findSkill 按施放者和编号查找技能实体
func (s *TurnSystem) findSkill(caster components.Side, skillID int) (ecs.EntityID, *components.SkillComponent, *components.AnimationComponent, bool) {
	entities := ecs.GetEntitiesWith2[*components.SkillComponent, *components.AnimationComponent](s.entityManager)
	for _, id := range entities {
		skill, _ := ecs.GetComponent[*components.SkillComponent](s.entityManager, id)
		if skill.Caster != caster || skill.ID != skillID {
			continue
		}
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		return id, skill, anim, true
	}
	return 0, nil, nil, false
}

// IsSkillPlaying 玩家技能动画是否正在播放
func (s *TurnSystem) IsSkillPlaying(skillID int) bool {
	_, _, anim, ok := s.findSkill(components.SidePlayer, skillID)
	return ok && anim.IsPlaying
}

// CastPlayerSkill 施放玩家技能
//
// 前置条件：战斗进行中、双方生命值大于 0、该技能动画未在播放。
// 不满足时什么都不做并返回 false。
func (s *TurnSystem) CastPlayerSkill(skillID int) bool {
	if !s.state.CanCast() {
		return false
	}

	_, skill, anim, ok := s.findSkill(components.SidePlayer, skillID)
	if !ok {
		log.Printf("[TurnSystem] 未找到技能 %d", skillID)
		return false
	}
	if anim.IsPlaying {
		return false
	}

	Restart(anim)
	anim.OnFinished = nil
	s.playSound(skill.Sound)

	damage := s.rollDamage(skill.BaseDamage, skill.RandomRange)
	s.state.DamageEnemy(damage)
	s.state.StatusText = fmt.Sprintf("Skill %d hits the enemy for %d damage!", skill.ID, damage)
	log.Printf("[TurnSystem] 技能 %d 造成 %d 伤害，敌人剩余 %d", skill.ID, damage, s.state.EnemyHP)

	// 结算期间（以及敌人倒下后）禁止继续出招
	s.setSkillsEnabled(false)

	if s.state.EnemyHP == 0 {
		s.state.EnemyDefeated = true
		s.state.StatusText = game.StatusEnemyDefeated
		log.Printf("[TurnSystem] 敌人被击败")
		s.notify()
		return true
	}

	s.state.RetaliationPending = true
	switch s.cfg.Retaliation.Trigger {
	case config.RetaliationTriggerDelay:
		NewTimer(s.entityManager, RetaliationTimerName, s.cfg.Retaliation.Delay, s.resolveRetaliation)
	default:
		anim.OnFinished = s.resolveRetaliation
	}

	s.notify()
	return true
}

// resolveRetaliation 执行挂起的反击并恢复技能输入
func (s *TurnSystem) resolveRetaliation() {
	if !s.state.RetaliationPending || !s.state.CombatActive {
		return
	}
	s.state.RetaliationPending = false

	s.EnemyAttack()
	s.setSkillsEnabled(true)
	s.notify()
}

// EnemyAttack 敌人反击：播放敌人技能动画并扣除玩家生命值
// 玩家生命值降到 0 时不做任何额外处理（没有失败结算）
func (s *TurnSystem) EnemyAttack() {
	_, skill, anim, ok := s.findSkill(components.SideEnemy, 1)
	if !ok {
		log.Printf("[TurnSystem] 未找到敌人技能")
		return
	}

	// 敌人技能动画结束不触发任何事件
	Restart(anim)
	anim.OnFinished = nil
	s.playSound(skill.Sound)

	damage := s.rollDamage(skill.BaseDamage, skill.RandomRange)
	s.state.DamagePlayer(damage)
	s.state.StatusText = fmt.Sprintf("%s used %s! -%d HP", s.cfg.EnemyName, skill.Label, damage)
	log.Printf("[TurnSystem] %s 反击造成 %d 伤害，玩家剩余 %d", s.cfg.EnemyName, damage, s.state.PlayerHP)

	s.notify()
}

// setSkillsEnabled 同步战斗状态与三个技能按钮的可用状态
func (s *TurnSystem) setSkillsEnabled(enabled bool) {
	s.state.SkillsEnabled = enabled

	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		button.Enabled = enabled
		if !enabled {
			button.State = components.UIDisabled
		} else if button.State == components.UIDisabled {
			button.State = components.UINormal
		}
	}
}

func (s *TurnSystem) playSound(path string) {
	if s.sounds != nil && path != "" {
		s.sounds.PlaySound(path)
	}
}

func (s *TurnSystem) notify() {
	if s.OnStateChanged != nil {
		s.OnStateChanged()
	}
}
