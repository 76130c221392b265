package components

import "github.com/hajimehoshi/ebiten/v2"

// AnimationComponent 管理按顺序播放的帧动画
// 存储动画的所有帧、每帧时长以及当前播放状态
//
// 非循环动画播放到最后一帧之后自动回到第 0 帧并停止（IsPlaying=false），
// 随后调用 OnFinished。循环动画永远不会结束。
type AnimationComponent struct {
	Frames       []*ebiten.Image // 动画的所有帧图片
	FramePeriod  float64         // 每帧时长(秒)
	FrameCounter float64         // 当前帧已累计时长(秒)
	CurrentFrame int             // 当前显示的帧索引(0-based)
	IsLooping    bool            // 是否循环播放
	IsPlaying    bool            // 是否正在播放（非播放状态不绘制技能动画）

	// OnFinished 非循环动画完整播放一遍后的回调（可为 nil）
	OnFinished func()
}

// CurrentImage 返回当前帧图像，没有帧时返回 nil
func (a *AnimationComponent) CurrentImage() *ebiten.Image {
	if len(a.Frames) == 0 || a.CurrentFrame < 0 || a.CurrentFrame >= len(a.Frames) {
		return nil
	}
	return a.Frames[a.CurrentFrame]
}
