package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// fieldHint 战斗之外显示的提示文字
const fieldHint = "Press B to battle, Esc to leave the battle"

// fieldBackgroundColor 场地底色
var fieldBackgroundColor = color.RGBA{R: 30, G: 60, B: 30, A: 255}

// FieldSceneOptions 场地场景的启动选项
type FieldSceneOptions struct {
	// StartBattle 进入场景时立即开始战斗
	StartBattle bool
	// Background 初始背景索引（-1 表示使用保存的设置）
	Background int
}

// FieldScene 承载战斗画面的宿主视图
//
// 战斗之外只绘制场地和提示文字；按 B 开始战斗，按 Esc 结束战斗。
// 实现 Host，战斗画面通过 RequestRedraw 通知重绘。
type FieldScene struct {
	combat   *CombatScreen
	settings *game.SettingsManager
	opts     FieldSceneOptions

	hintFont *text.GoTextFace

	// redrawRequests 自上次绘制以来收到的重绘请求数
	redrawRequests int
}

// NewFieldScene 创建场地场景，并创建以自身为宿主的战斗画面
func NewFieldScene(deps CombatDeps, opts FieldSceneOptions) *FieldScene {
	f := &FieldScene{
		settings: deps.Settings,
		opts:     opts,
		hintFont: deps.Resources.LoadFontOrDefault(deps.Config.Font.Path, config.StatusFontSize),
	}

	deps.Host = f
	f.combat = NewCombatScreen(deps)

	if opts.Background >= 0 {
		f.combat.SelectBackground(opts.Background)
	}
	return f
}

// Combat 返回承载的战斗画面
func (f *FieldScene) Combat() *CombatScreen {
	return f.combat
}

// RequestRedraw 实现 Host
func (f *FieldScene) RequestRedraw() {
	f.redrawRequests++
}

// OnEnter 场景成为当前场景
func (f *FieldScene) OnEnter() {
	log.Printf("[FieldScene] Entered")
	if f.opts.StartBattle {
		f.combat.StartCombat()
	}
}

// OnLeave 场景被替换时结束正在进行的战斗
func (f *FieldScene) OnLeave() {
	if f.combat.IsActive() {
		f.combat.EndCombat()
	}
}

// Update 处理场地快捷键并推进战斗画面
func (f *FieldScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) && !f.combat.IsActive() {
		f.combat.StartCombat()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && f.combat.IsActive() {
		f.combat.EndCombat()
	}

	f.combat.Update(deltaTime)
}

// Draw 战斗进行时绘制战斗画面，否则绘制场地
func (f *FieldScene) Draw(screen *ebiten.Image) {
	f.redrawRequests = 0

	if f.combat.IsActive() {
		f.combat.Draw(screen)
		return
	}

	screen.Fill(fieldBackgroundColor)
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(config.ScreenWidth/2, config.ScreenHeight/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, fieldHint, f.hintFont, op)
}

// SaveOnExit 实现 game.Saveable，退出时保存设置
func (f *FieldScene) SaveOnExit() bool {
	if f.settings == nil {
		return true
	}
	if err := f.settings.Save(); err != nil {
		log.Printf("[FieldScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}
