package systems

import (
	"image/color"

	"github.com/decker502/felisbattle/pkg/components"
	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ButtonRenderSystem 按钮渲染系统
// 负责渲染所有可见的技能按钮
//
// 职责：
//   - 渲染按钮底色（根据状态选择普通/悬停/禁用颜色）
//   - 渲染边框
//   - 渲染按钮文字（水平、垂直居中）
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
	}
}

// Draw 按实体 ID 顺序渲染所有可见按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok || !button.Visible {
		return
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(button.Width), float32(button.Height)

	vector.DrawFilledRect(screen, x, y, w, h, buttonFill(button), false)
	if button.BorderWidth > 0 && button.BorderColor != nil {
		vector.StrokeRect(screen, x, y, w, h, float32(button.BorderWidth), button.BorderColor, false)
	}

	s.drawButtonText(screen, button, pos.X, pos.Y)
}

// buttonFill 根据状态选择底色
func buttonFill(button *components.ButtonComponent) color.Color {
	switch button.State {
	case components.UIDisabled:
		return config.ButtonDisabledFillColor
	case components.UIHovered, components.UIClicked:
		if button.HoverColor != nil {
			return button.HoverColor
		}
	}
	if button.FillColor != nil {
		return button.FillColor
	}
	return config.ButtonFillColor
}

// drawButtonText 渲染按钮文字（居中）
func (s *ButtonRenderSystem) drawButtonText(screen *ebiten.Image, button *components.ButtonComponent, x, y float64) {
	if button.Text == "" || button.Font == nil {
		return
	}

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter   // 水平居中
	op.LayoutOptions.SecondaryAlign = text.AlignCenter // 垂直居中
	op.GeoM.Translate(x+button.Width/2, y+button.Height/2)

	textColor := button.TextColor
	if button.State == components.UIDisabled {
		textColor = config.ButtonDisabledTextColor
	}
	if textColor == nil {
		textColor = config.ButtonTextColor
	}
	op.ColorScale.ScaleWithColor(textColor)

	text.Draw(screen, button.Text, button.Font, op)
}
