package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonComponent 技能按钮组件（ECS 架构）
// 包含按钮的所有数据：外观、文字、状态、回调
//
// 技能按钮是纯色矩形 + 边框 + 居中文字，不依赖图片资源。
type ButtonComponent struct {
	// ===== 按钮文字 =====
	// Text 按钮上显示的文字
	Text string
	// Font 文字字体
	Font *text.GoTextFace
	// TextColor 文字颜色
	TextColor color.Color

	// ===== 外观 =====
	FillColor   color.Color
	HoverColor  color.Color // 悬停时的填充色（为 nil 时使用 FillColor）
	BorderColor color.Color
	BorderWidth float64

	// ===== 按钮尺寸 =====
	Width  float64
	Height float64

	// ===== 按钮状态 =====
	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool
	// Visible 是否可见（战斗未开始时按钮隐藏）
	Visible bool

	// SkillID 按钮对应的技能编号
	SkillID int

	// ===== 点击回调 =====
	// OnClick 点击回调函数
	OnClick func()
}

// Contains 判断屏幕坐标是否落在按钮矩形内（含边界）
func (b *ButtonComponent) Contains(pos *PositionComponent, x, y float64) bool {
	return x >= pos.X && x <= pos.X+b.Width &&
		y >= pos.Y && y <= pos.Y+b.Height
}
