package config

import "image/color"

// 布局配置常量
// 本文件定义了战斗画面的布局参数，所有坐标均为 800x600 逻辑屏幕坐标

// Screen 屏幕
const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 800
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 600
)

// CombatantMaxHP 战斗者最大生命值（玩家与敌人相同）
const CombatantMaxHP = 100

// Skill buttons (技能按钮)
// 三个按钮水平排列，以右边距为基准向左偏移
const (
	SkillButtonWidth       = 100.0
	SkillButtonHeight      = 30.0
	SkillButtonRightMargin = 60.0
	SkillButtonY           = 500.0
	SkillButtonBorderWidth = 2.0
	SkillButtonFontSize    = 18.0
)

// skillButtonOffsets 每个按钮相对"最右按钮基准位置"向左的偏移量
var skillButtonOffsets = [PlayerSkillCount]float64{280, 150, 20}

// SkillButtonX 返回技能按钮（1-based）的左上角 X 坐标
// 技能1: 360, 技能2: 490, 技能3: 620
func SkillButtonX(skillID int) float64 {
	if skillID < 1 || skillID > PlayerSkillCount {
		return 0
	}
	return ScreenWidth - SkillButtonWidth - SkillButtonRightMargin - skillButtonOffsets[skillID-1]
}

// Status panel (状态面板)
const (
	StatusPanelX       = 300.0
	StatusPanelY       = 400.0
	StatusPanelWidth   = 480.0
	StatusPanelHeight  = 80.0
	StatusPanelRadius  = 5.0
	StatusTextOffsetX  = 10.0
	StatusTextBaseline = 28.0 // 文字基线相对面板顶部的距离
	StatusLineHeight   = 28.0
	StatusMaxLines     = 2
	StatusFontSize     = 24.0
)

// Platform (玩家脚下的椭圆平台)
const (
	PlatformX      = 60.0
	PlatformY      = 480.0
	PlatformWidth  = 280.0
	PlatformHeight = 70.0
)

// Combatant sprites (战斗者精灵位置)
const (
	// PlayerSpriteX 玩家待机精灵左边距
	PlayerSpriteX = 20.0
	// PlayerSpriteBottomMargin 玩家待机精灵底边距（y = 屏幕高 - 图高 - 边距）
	PlayerSpriteBottomMargin = 20.0
	// EnemySpriteRightMargin 敌人待机精灵右边距（x = 屏幕宽 - 图宽 - 边距）
	EnemySpriteRightMargin = 3.0
	// EnemySpriteY 敌人待机精灵顶部位置
	EnemySpriteY = 1.0
)

// HP bars (血条)
const (
	HPBarWidth        = 200.0
	HPBarHeight       = 20.0
	PlayerHPBarX      = 110.0
	PlayerHPBarY      = 570.0
	EnemyHPBarX       = 490.0
	EnemyHPBarY       = 310.0
	HPLabelOffsetX    = -8.0  // 标签相对血条的 X 偏移
	HPLabelBaselineDY = -12.0 // 标签基线相对血条顶部的 Y 偏移
	HPLabelFontSize   = 24.0
)

// Background selector (背景选择器)
const (
	BackgroundSelectorX        = 20
	BackgroundSelectorY        = 20
	BackgroundSelectorWidth    = 140
	BackgroundSelectorHeight   = 30
	BackgroundSelectorFontSize = 14.0
)

// Fallback background (背景加载失败时生成的双色背景)
const (
	// FallbackHorizonY 天空与地面的分界线
	FallbackHorizonY = 300
)

// 颜色配置
var (
	// ButtonFillColor 技能按钮填充色（深蓝）
	ButtonFillColor = color.RGBA{R: 0, G: 0, B: 70, A: 255}
	// ButtonTextColor 技能按钮文字颜色（黄）
	ButtonTextColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	// ButtonBorderColor 技能按钮边框颜色
	ButtonBorderColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	// ButtonHoverFillColor 鼠标悬停时的填充色
	ButtonHoverFillColor = color.RGBA{R: 20, G: 20, B: 110, A: 255}
	// ButtonDisabledFillColor 禁用时的填充色
	ButtonDisabledFillColor = color.RGBA{R: 40, G: 40, B: 60, A: 255}
	// ButtonDisabledTextColor 禁用时的文字颜色
	ButtonDisabledTextColor = color.RGBA{R: 160, G: 160, B: 110, A: 255}

	// StatusPanelColor 状态面板颜色（半透明深蓝）
	StatusPanelColor = color.RGBA{R: 0, G: 0, B: 70, A: 200}
	// StatusTextColor 状态文字颜色
	StatusTextColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}

	// PlatformColor 平台颜色（棕色）
	PlatformColor = color.RGBA{R: 135, G: 103, B: 51, A: 255}

	// HPBarBackColor 血条底色
	HPBarBackColor = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	// HPBarFillColor 血条填充色
	HPBarFillColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	// HPBarBorderColor 血条边框
	HPBarBorderColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	// HPLabelColor 血条标签文字
	HPLabelColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

	// FallbackSkyColor 备用背景天空色
	FallbackSkyColor = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	// FallbackGroundColor 备用背景地面色
	FallbackGroundColor = color.RGBA{R: 100, G: 200, B: 100, A: 255}
)
