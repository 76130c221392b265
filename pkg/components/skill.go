package components

import "image"

// SkillComponent 技能动画实体携带的技能数据
//
// 每个技能一个实体，战斗开始时创建，动画组件初始为停止状态；
// 出招时由 TurnSystem 重新启动动画。
type SkillComponent struct {
	ID          int    // 技能编号（玩家 1..3，敌人 1）
	Caster      Side   // 施放者
	Label       string // 技能名，如 "Skill 1"
	BaseDamage  int    // 基础伤害
	RandomRange int    // 附加伤害范围 [0, RandomRange-1]
	Sound       string // 音效路径（可为空）

	// Area 绘制区域；为空矩形时铺满整个屏幕
	Area image.Rectangle
}

// FullScreen 技能动画是否铺满整个屏幕
func (s *SkillComponent) FullScreen() bool {
	return s.Area.Empty()
}
