package scenes

import (
	"image"
	"log"

	"github.com/decker502/felisbattle/pkg/components"
	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// initEntities 创建一场战斗拥有的全部实体
// 帧图片通过 ResourceManager 缓存，重复开始战斗不会重新解码
func (c *CombatScreen) initEntities() {
	c.createCombatant(components.SidePlayer, c.cfg.Player)
	c.createCombatant(components.SideEnemy, c.cfg.Enemy)

	for _, skill := range c.cfg.Skills {
		c.createSkill(components.SidePlayer, skill)
		c.createSkillButton(skill)
	}
	c.createSkill(components.SideEnemy, c.cfg.EnemySkill)

	log.Printf("[CombatScreen] Created %d battle entities", c.entityManager.Count())
}

// createCombatant 创建战斗者实体（循环播放的待机动画）
func (c *CombatScreen) createCombatant(side components.Side, cc config.CombatantConfig) ecs.EntityID {
	id := c.entityManager.CreateEntity()
	ecs.AddComponent(c.entityManager, id, &components.CombatantComponent{
		Side:    side,
		Name:    cc.Name,
		HPLabel: cc.HPLabel,
	})
	ecs.AddComponent(c.entityManager, id, &components.AnimationComponent{
		Frames:      c.resources.LoadFrames(cc.IdleFrames.FramePaths()),
		FramePeriod: c.cfg.IdleFramePeriod,
		IsLooping:   true,
		IsPlaying:   true,
	})
	return id
}

// createSkill 创建技能动画实体（默认不播放）
// 配置了绘制区域的技能，帧在加载时缩放到区域大小
func (c *CombatScreen) createSkill(caster components.Side, sc config.SkillConfig) ecs.EntityID {
	paths := sc.Frames.FramePaths()

	var area image.Rectangle
	frames := c.resources.LoadFrames
	if sc.Area != nil {
		area = image.Rect(sc.Area.X, sc.Area.Y, sc.Area.X+sc.Area.Width, sc.Area.Y+sc.Area.Height)
		frames = func(p []string) []*ebiten.Image {
			return c.resources.LoadFramesResized(p, sc.Area.Width, sc.Area.Height)
		}
	}

	id := c.entityManager.CreateEntity()
	ecs.AddComponent(c.entityManager, id, &components.SkillComponent{
		ID:          sc.ID,
		Caster:      caster,
		Label:       sc.Label,
		BaseDamage:  sc.BaseDamage,
		RandomRange: sc.RandomRange,
		Sound:       sc.Sound,
		Area:        area,
	})
	ecs.AddComponent(c.entityManager, id, &components.AnimationComponent{
		Frames:      frames(paths),
		FramePeriod: sc.FramePeriod,
	})
	return id
}

// createSkillButton 创建技能按钮（右下角一排，从左到右为技能 1/2/3）
func (c *CombatScreen) createSkillButton(sc config.SkillConfig) ecs.EntityID {
	skillID := sc.ID

	id := c.entityManager.CreateEntity()
	ecs.AddComponent(c.entityManager, id, &components.PositionComponent{
		X: config.SkillButtonX(skillID),
		Y: config.SkillButtonY,
	})
	ecs.AddComponent(c.entityManager, id, &components.ButtonComponent{
		Text:        sc.Label,
		Font:        c.buttonFont,
		TextColor:   config.ButtonTextColor,
		FillColor:   config.ButtonFillColor,
		HoverColor:  config.ButtonHoverFillColor,
		BorderColor: config.ButtonBorderColor,
		BorderWidth: config.SkillButtonBorderWidth,
		Width:       config.SkillButtonWidth,
		Height:      config.SkillButtonHeight,
		State:       components.UINormal,
		Enabled:     true,
		Visible:     true,
		SkillID:     skillID,
		OnClick: func() {
			c.turnSystem.CastPlayerSkill(skillID)
		},
	})
	return id
}

// skillSounds 返回所有技能音效路径（用于预加载）
func (c *CombatScreen) skillSounds() []string {
	sounds := make([]string, 0, len(c.cfg.Skills)+1)
	for _, sc := range c.cfg.Skills {
		sounds = append(sounds, sc.Sound)
	}
	return append(sounds, c.cfg.EnemySkill.Sound)
}
