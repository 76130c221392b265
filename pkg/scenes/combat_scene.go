package scenes

import (
	"log"

	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/ecs"
	"github.com/decker502/felisbattle/pkg/game"
	"github.com/decker502/felisbattle/pkg/systems"
	"github.com/decker502/felisbattle/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CombatDeps 创建战斗画面所需的协作者
type CombatDeps struct {
	Config    *config.CombatConfig
	Resources *game.ResourceManager
	Audio     *game.AudioManager    // 可为 nil（不播放音效）
	Settings  *game.SettingsManager // 可为 nil（背景选择不持久化）
	Host      Host                  // 可为 nil
	Rand      systems.RandomSource
}

// CombatScreen 回合制战斗画面
//
// 独占战斗状态和本场战斗的全部实体（战斗者、技能动画、按钮、反击计时器）。
// 宿主只调用 StartCombat / EndCombat / Draw 以及输入转发方法。
type CombatScreen struct {
	cfg       *config.CombatConfig
	resources *game.ResourceManager
	audio     *game.AudioManager
	settings  *game.SettingsManager
	host      Host

	state *game.BattleState

	// ECS
	entityManager   *ecs.EntityManager
	animationSystem *systems.AnimationSystem
	timerSystem     *systems.TimerSystem
	turnSystem      *systems.TurnSystem
	buttonSystem    *systems.ButtonSystem
	renderSystem    *systems.BattleRenderSystem

	// 字体
	buttonFont   *text.GoTextFace
	selectorFont *text.GoTextFace

	selector *backgroundSelector

	// 光标形状设置函数（默认 ebiten.SetCursorShape）
	setCursorShape func(ebiten.CursorShapeType)
	cursorShape    ebiten.CursorShapeType
}

// NewCombatScreen 创建战斗画面（战斗尚未开始）
// 字体和背景在这里加载；战斗实体在 StartCombat 时创建
func NewCombatScreen(deps CombatDeps) *CombatScreen {
	cfg := deps.Config
	rm := deps.Resources
	state := game.NewBattleState()
	em := ecs.NewEntityManager()

	c := &CombatScreen{
		cfg:             cfg,
		resources:       rm,
		audio:           deps.Audio,
		settings:        deps.Settings,
		host:            deps.Host,
		state:           state,
		entityManager:   em,
		animationSystem: systems.NewAnimationSystem(em),
		timerSystem:     systems.NewTimerSystem(em),
		buttonSystem:    systems.NewButtonSystem(em),
		buttonFont:      rm.LoadFontOrDefault(cfg.Font.Path, config.SkillButtonFontSize),
		selectorFont:    rm.LoadFontOrDefault(cfg.Font.Path, config.BackgroundSelectorFontSize),
		setCursorShape:  ebiten.SetCursorShape,
		cursorShape:     ebiten.CursorShapeDefault,
	}

	var sounds systems.SoundPlayer
	if deps.Audio != nil {
		sounds = deps.Audio
		deps.Audio.PreloadSounds(c.skillSounds())
	}
	c.turnSystem = systems.NewTurnSystem(em, state, systems.TurnConfig{
		EnemyName:   cfg.Enemy.Name,
		Retaliation: cfg.Retaliation,
	}, deps.Rand, sounds)
	c.turnSystem.OnStateChanged = c.requestRedraw

	c.renderSystem = systems.NewBattleRenderSystem(em, state,
		rm.LoadFontOrDefault(cfg.Font.Path, config.StatusFontSize),
		rm.LoadFontOrDefault(cfg.Font.Path, config.HPLabelFontSize))

	if deps.Settings != nil {
		state.SelectedBackground = deps.Settings.GetSettings().BackgroundIndex
	}
	c.selector = newBackgroundSelector(c.selectorFont, c.NextBackground)
	c.selector.setLabel(state.SelectedBackground)
	c.loadBackground(state.SelectedBackground)

	return c
}

// StartCombat 开始一场新战斗：双方满血、显示战斗界面并启动待机动画
// 战斗已在进行时不做任何事
func (c *CombatScreen) StartCombat() {
	if c.state.CombatActive {
		log.Printf("[CombatScreen] StartCombat ignored: combat already active")
		return
	}

	c.state.Reset()
	c.state.CombatActive = true
	c.entityManager.Clear()
	c.initEntities()
	c.selector.setLabel(c.state.SelectedBackground)

	log.Printf("[CombatScreen] Battle started (background %d, retaliation=%s)",
		c.state.SelectedBackground+1, c.cfg.Retaliation.Trigger)
	c.requestRedraw()
}

// EndCombat 结束战斗：隐藏战斗界面并销毁本场战斗的全部实体
// 正在播放的技能动画和尚未执行的反击一并取消
func (c *CombatScreen) EndCombat() {
	c.state.CombatActive = false
	c.state.RetaliationPending = false
	c.entityManager.Clear()
	c.applyCursorShape(ebiten.CursorShapeDefault)

	log.Printf("[CombatScreen] Battle ended (player %d, enemy %d)", c.state.PlayerHP, c.state.EnemyHP)
	c.requestRedraw()
}

// IsActive 战斗是否正在进行
func (c *CombatScreen) IsActive() bool {
	return c.state.CombatActive
}

// State 返回当前战斗状态的快照
func (c *CombatScreen) State() game.BattleState {
	return *c.state
}

// Update 推进一帧：轮询指针和键盘、更新背景选择器、推进动画和计时器
func (c *CombatScreen) Update(deltaTime float64) {
	if !c.state.CombatActive {
		return
	}

	c.selector.update()

	input := utils.GetInputState()
	c.UpdateCursorOnHover(input.X, input.Y)
	if input.JustPressed {
		c.OnMouseClicked(input.X, input.Y)
	}
	if skill := utils.JustPressedSkillKey(); skill != 0 {
		c.OnSkillPressed(skill)
	}
	switch utils.JustPressedBackgroundKey() {
	case 1:
		c.NextBackground()
	case -1:
		c.PreviousBackground()
	}

	c.Advance(deltaTime)
}

// Advance 推进动画时钟和计时器（不读取输入）
func (c *CombatScreen) Advance(deltaTime float64) {
	advanced := c.animationSystem.Update(deltaTime)
	c.timerSystem.Update(deltaTime)
	c.entityManager.RemoveMarkedEntities()

	if advanced {
		c.requestRedraw()
	}
}

// Draw 绘制战斗画面；战斗未进行时不绘制任何内容
func (c *CombatScreen) Draw(screen *ebiten.Image) {
	if !c.state.CombatActive {
		return
	}
	c.renderSystem.Draw(screen)
	c.selector.draw(screen)
}

// OnMouseClicked 转发的指针点击
// 只有落在可见且启用的技能按钮上才会出招
func (c *CombatScreen) OnMouseClicked(x, y int) {
	if !c.state.CombatActive {
		return
	}
	c.buttonSystem.HandleClick(float64(x), float64(y))
}

// UpdateCursorOnHover 指针位于任一技能按钮上时显示手型光标
func (c *CombatScreen) UpdateCursorOnHover(x, y int) {
	if !c.state.CombatActive {
		c.applyCursorShape(ebiten.CursorShapeDefault)
		return
	}

	if c.buttonSystem.UpdateHover(float64(x), float64(y)) {
		c.applyCursorShape(ebiten.CursorShapePointer)
	} else {
		c.applyCursorShape(ebiten.CursorShapeDefault)
	}
}

// OnSkillPressed 数字键 1/2/3 快捷出招，等价于点击对应按钮
func (c *CombatScreen) OnSkillPressed(skillNumber int) {
	if !c.state.CombatActive {
		return
	}
	c.buttonSystem.ClickSkill(skillNumber)
}

func (c *CombatScreen) applyCursorShape(shape ebiten.CursorShapeType) {
	if c.cursorShape == shape {
		return
	}
	c.cursorShape = shape
	if c.setCursorShape != nil {
		c.setCursorShape(shape)
	}
}

func (c *CombatScreen) requestRedraw() {
	if c.host != nil {
		c.host.RequestRedraw()
	}
}
