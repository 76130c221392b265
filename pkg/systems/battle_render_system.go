package systems

import (
	"fmt"
	"image/color"

	"github.com/decker502/felisbattle/pkg/components"
	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/ecs"
	"github.com/decker502/felisbattle/pkg/game"
	"github.com/decker502/felisbattle/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BattleRenderSystem 战斗画面渲染系统
//
// 固定绘制顺序：
//  1. 背景
//  2. 状态面板 + 状态文字
//  3. 地面平台
//  4. 玩家待机精灵（没有玩家技能动画播放时）
//  5. 正在播放的玩家技能动画
//  6. 敌人技能动画
//  7. 玩家血条、敌人血条
//  8. 敌人待机精灵（敌人被击败后不绘制）
//  9. 技能按钮
type BattleRenderSystem struct {
	entityManager *ecs.EntityManager
	state         *game.BattleState
	buttons       *ButtonRenderSystem

	background *ebiten.Image
	panel      *ebiten.Image // 预渲染的圆角状态面板
	platform   *ebiten.Image // 预渲染的椭圆平台

	statusFace  *text.GoTextFace
	hpLabelFace *text.GoTextFace
}

// NewBattleRenderSystem 创建战斗渲染系统
// 面板和平台在这里用 gg 光栅化一次，之后每帧直接贴图
func NewBattleRenderSystem(em *ecs.EntityManager, state *game.BattleState, statusFace, hpLabelFace *text.GoTextFace) *BattleRenderSystem {
	return &BattleRenderSystem{
		entityManager: em,
		state:         state,
		buttons:       NewButtonRenderSystem(em),
		panel: utils.ToEbitenImage(utils.RenderRoundedPanel(
			config.StatusPanelWidth, config.StatusPanelHeight,
			config.StatusPanelRadius, config.StatusPanelColor)),
		platform: utils.ToEbitenImage(utils.RenderEllipse(
			config.PlatformWidth, config.PlatformHeight, config.PlatformColor)),
		statusFace:  statusFace,
		hpLabelFace: hpLabelFace,
	}
}

// SetBackground 设置当前背景图
func (s *BattleRenderSystem) SetBackground(img *ebiten.Image) {
	s.background = img
}

// Background 返回当前背景图
func (s *BattleRenderSystem) Background() *ebiten.Image {
	return s.background
}

// Draw 按固定顺序绘制整个战斗画面
func (s *BattleRenderSystem) Draw(screen *ebiten.Image) {
	s.drawBackground(screen)
	s.drawStatusPanel(screen)
	drawImageAt(screen, s.platform, config.PlatformX, config.PlatformY)

	playerSkills, enemySkills := s.playingSkills()

	if len(playerSkills) == 0 {
		s.drawCombatant(screen, components.SidePlayer)
	}
	for _, id := range playerSkills {
		s.drawSkill(screen, id)
	}
	for _, id := range enemySkills {
		s.drawSkill(screen, id)
	}

	s.drawHPBar(screen, components.SidePlayer, s.state.PlayerHP, config.PlayerHPBarX, config.PlayerHPBarY)
	s.drawHPBar(screen, components.SideEnemy, s.state.EnemyHP, config.EnemyHPBarX, config.EnemyHPBarY)

	if !s.state.EnemyDefeated {
		s.drawCombatant(screen, components.SideEnemy)
	}

	s.buttons.Draw(screen)
}

func (s *BattleRenderSystem) drawBackground(screen *ebiten.Image) {
	if s.background == nil {
		screen.Fill(config.FallbackSkyColor)
		return
	}
	drawImageScaled(screen, s.background, 0, 0, config.ScreenWidth, config.ScreenHeight)
}

func (s *BattleRenderSystem) drawStatusPanel(screen *ebiten.Image) {
	drawImageAt(screen, s.panel, config.StatusPanelX, config.StatusPanelY)

	lines := utils.WrapText(s.state.StatusText, s.statusFace, config.StatusPanelWidth-2*config.StatusTextOffsetX)
	if len(lines) > config.StatusMaxLines {
		lines = lines[:config.StatusMaxLines]
	}
	for i, line := range lines {
		drawTextAtBaseline(screen, line, s.statusFace,
			config.StatusPanelX+config.StatusTextOffsetX,
			config.StatusPanelY+config.StatusTextBaseline+float64(i)*config.StatusLineHeight,
			config.StatusTextColor)
	}
}

// playingSkills 返回正在播放的技能实体（按 ID 顺序），分为玩家和敌人两组
func (s *BattleRenderSystem) playingSkills() (player, enemy []ecs.EntityID) {
	entities := ecs.GetEntitiesWith2[*components.SkillComponent, *components.AnimationComponent](s.entityManager)
	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		if !anim.IsPlaying {
			continue
		}
		skill, _ := ecs.GetComponent[*components.SkillComponent](s.entityManager, id)
		if skill.Caster == components.SidePlayer {
			player = append(player, id)
		} else {
			enemy = append(enemy, id)
		}
	}
	return player, enemy
}

// drawSkill 绘制技能当前帧：未配置区域时铺满屏幕，否则绘制到指定子区域
func (s *BattleRenderSystem) drawSkill(screen *ebiten.Image, id ecs.EntityID) {
	skill, _ := ecs.GetComponent[*components.SkillComponent](s.entityManager, id)
	anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)

	frame := anim.CurrentImage()
	if frame == nil {
		return
	}

	if skill.FullScreen() {
		drawImageScaled(screen, frame, 0, 0, config.ScreenWidth, config.ScreenHeight)
		return
	}
	area := skill.Area
	drawImageScaled(screen, frame, float64(area.Min.X), float64(area.Min.Y), float64(area.Dx()), float64(area.Dy()))
}

// drawCombatant 绘制战斗者待机帧
// 玩家贴左下角，敌人贴右上角，位置随帧尺寸变化
func (s *BattleRenderSystem) drawCombatant(screen *ebiten.Image, side components.Side) {
	id, ok := s.findCombatant(side)
	if !ok {
		return
	}
	anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
	frame := anim.CurrentImage()
	if frame == nil {
		return
	}

	x, y := CombatantPosition(side, frame.Bounds().Dx(), frame.Bounds().Dy())
	drawImageAt(screen, frame, x, y)
}

// CombatantPosition 计算战斗者待机帧的左上角位置
func CombatantPosition(side components.Side, width, height int) (float64, float64) {
	if side == components.SidePlayer {
		return config.PlayerSpriteX, float64(config.ScreenHeight) - float64(height) - config.PlayerSpriteBottomMargin
	}
	return float64(config.ScreenWidth) - float64(width) - config.EnemySpriteRightMargin, config.EnemySpriteY
}

func (s *BattleRenderSystem) findCombatant(side components.Side) (ecs.EntityID, bool) {
	entities := ecs.GetEntitiesWith2[*components.CombatantComponent, *components.AnimationComponent](s.entityManager)
	for _, id := range entities {
		c, _ := ecs.GetComponent[*components.CombatantComponent](s.entityManager, id)
		if c.Side == side {
			return id, true
		}
	}
	return 0, false
}

// drawHPBar 绘制血条：深灰底、绿色填充（宽度与 hp/100 成正比）、黑色边框和标签
func (s *BattleRenderSystem) drawHPBar(screen *ebiten.Image, side components.Side, hp int, x, y float64) {
	label := "Player"
	if side == components.SideEnemy {
		label = "Enemy"
	}
	if id, ok := s.findCombatant(side); ok {
		c, _ := ecs.GetComponent[*components.CombatantComponent](s.entityManager, id)
		if c.HPLabel != "" {
			label = c.HPLabel
		}
	}

	fx, fy := float32(x), float32(y)
	vector.DrawFilledRect(screen, fx, fy, config.HPBarWidth, config.HPBarHeight, config.HPBarBackColor, false)
	if w := HPBarFillWidth(hp); w > 0 {
		vector.DrawFilledRect(screen, fx, fy, float32(w), config.HPBarHeight, config.HPBarFillColor, false)
	}
	vector.StrokeRect(screen, fx, fy, config.HPBarWidth, config.HPBarHeight, 1, config.HPBarBorderColor, false)

	drawTextAtBaseline(screen, HPLabel(label, hp), s.hpLabelFace,
		x+config.HPLabelOffsetX, y+config.HPLabelBaselineDY, config.HPLabelColor)
}

// HPBarFillWidth 血条填充宽度（像素，向下取整）
func HPBarFillWidth(hp int) int {
	return int(config.HPBarWidth * float64(hp) / float64(config.CombatantMaxHP))
}

// HPLabel 血条标签文字，如 "Player HP: 85/100"
func HPLabel(name string, hp int) string {
	return fmt.Sprintf("%s HP: %d/%d", name, hp, config.CombatantMaxHP)
}

func drawImageAt(screen, img *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(img, op)
}

// drawImageScaled 将图像缩放绘制到 (x, y, w, h) 矩形
func drawImageScaled(screen, img *ebiten.Image, x, y, w, h float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawTextAtBaseline 以基线坐标绘制文字
func drawTextAtBaseline(screen *ebiten.Image, str string, face *text.GoTextFace, x, baseline float64, clr color.Color) {
	if str == "" || face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, baseline-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
