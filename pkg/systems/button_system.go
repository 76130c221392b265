package systems

import (
	"github.com/decker502/felisbattle/pkg/components"
	"github.com/decker502/felisbattle/pkg/ecs"
)

// ButtonSystem 按钮交互系统
// 负责技能按钮的悬停状态和点击分发
//
// 职责：
//   - 根据指针位置更新按钮状态（UINormal / UIHovered / UIDisabled）
//   - 点击落在可见且启用的按钮内时触发 OnClick
//
// 输入坐标由调用者（CombatScreen）转发，本系统不直接读取鼠标；
// 光标形状同样由调用者根据 UpdateHover 的返回值设置
type ButtonSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// HandleClick 分发一次点击
// 返回 true 表示点击落在某个可见按钮上（无论该按钮是否启用）
func (s *ButtonSystem) HandleClick(x, y float64) bool {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Visible || !button.Contains(pos, x, y) {
			continue
		}

		// 禁用按钮吞掉点击但不触发回调
		if button.Enabled && button.OnClick != nil {
			button.OnClick()
		}
		return true
	}
	return false
}

// ClickSkill 以编程方式点击指定技能按钮（数字键快捷方式）
// 与鼠标点击遵守相同的可见/启用检查
func (s *ButtonSystem) ClickSkill(skillID int) bool {
	entities := ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		if button.SkillID != skillID {
			continue
		}
		if !button.Visible || !button.Enabled || button.OnClick == nil {
			return false
		}
		button.OnClick()
		return true
	}
	return false
}

// UpdateHover 根据指针位置更新按钮状态
// 返回 true 表示指针位于某个可见按钮之上（调用者据此切换手型光标）
func (s *ButtonSystem) UpdateHover(x, y float64) bool {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	hovered := false
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Visible {
			button.State = components.UINormal
			continue
		}

		inside := button.Contains(pos, x, y)
		if inside {
			hovered = true
		}

		switch {
		case !button.Enabled:
			button.State = components.UIDisabled
		case inside:
			button.State = components.UIHovered
		default:
			button.State = components.UINormal
		}
	}
	return hovered
}
