// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入状态
// 用于统一处理鼠标和触摸输入
type InputState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 点击/触摸位置
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
}

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetInputState() InputState {
	state := InputState{}

	// 首先检查触摸输入（移动设备）
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		return state
	}

	// 检查是否有活动的触摸（用于悬停检测）
	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		state.IsTouching = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		state.JustPressed = true
	}
	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// skillKeys 数字键到技能编号的映射（主键盘与小键盘）
var skillKeys = []struct {
	key   ebiten.Key
	skill int
}{
	{ebiten.KeyDigit1, 1},
	{ebiten.KeyDigit2, 2},
	{ebiten.KeyDigit3, 3},
	{ebiten.KeyNumpad1, 1},
	{ebiten.KeyNumpad2, 2},
	{ebiten.KeyNumpad3, 3},
}

// JustPressedSkillKey 返回本帧刚按下的技能数字键（1..3），没有则返回 0
func JustPressedSkillKey() int {
	for _, k := range skillKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			return k.skill
		}
	}
	return 0
}

// JustPressedBackgroundKey 返回背景切换方向：'[' 为 -1，']' 为 +1，否则 0
func JustPressedBackgroundKey() int {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		return -1
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		return 1
	default:
		return 0
	}
}
