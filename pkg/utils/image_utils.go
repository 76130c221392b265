package utils

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

// NewPlaceholderImage 创建边长为 size 的全透明占位图
// 资源加载失败时代替缺失的帧，保证绘制逻辑永远拿到非 nil 图像
func NewPlaceholderImage(size int) *ebiten.Image {
	if size <= 0 {
		size = 1
	}
	return ebiten.NewImage(size, size)
}

// RenderTwoToneBackground 生成上下两色的备用背景
// horizonY 以上填充 sky，以下填充 ground
func RenderTwoToneBackground(width, height, horizonY int, sky, ground color.Color) image.Image {
	dc := gg.NewContext(width, height)

	dc.SetColor(sky)
	dc.DrawRectangle(0, 0, float64(width), float64(horizonY))
	dc.Fill()

	dc.SetColor(ground)
	dc.DrawRectangle(0, float64(horizonY), float64(width), float64(height-horizonY))
	dc.Fill()

	return dc.Image()
}

// RenderRoundedPanel 生成圆角矩形面板（状态栏底板）
func RenderRoundedPanel(width, height int, radius float64, fill color.Color) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(0, 0, float64(width), float64(height), radius)
	dc.Fill()
	return dc.Image()
}

// RenderEllipse 生成内切于 width x height 矩形的实心椭圆（地面平台）
func RenderEllipse(width, height int, fill color.Color) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(fill)
	w, h := float64(width), float64(height)
	dc.DrawEllipse(w/2, h/2, w/2, h/2)
	dc.Fill()
	return dc.Image()
}

// ToEbitenImage 将 CPU 侧图像上传为 ebiten 图像
func ToEbitenImage(img image.Image) *ebiten.Image {
	return ebiten.NewImageFromImage(img)
}
