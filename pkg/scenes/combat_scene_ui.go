package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/felisbattle/pkg/config"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// backgroundSelector 左上角的背景选择按钮
// 每次点击切换到下一个背景，按钮文字显示当前背景名
type backgroundSelector struct {
	ui     *ebitenui.UI
	button *widget.Button
}

// newBackgroundSelector 创建背景选择器
// onClick 在按钮被点击时调用
func newBackgroundSelector(face text.Face, onClick func()) *backgroundSelector {
	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.RGBA{R: 230, G: 230, B: 230, A: 255}),
		Hover:   image.NewNineSliceColor(color.RGBA{R: 250, G: 250, B: 250, A: 255}),
		Pressed: image.NewNineSliceColor(color.RGBA{R: 200, G: 200, B: 200, A: 255}),
	}

	button := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
			widget.WidgetOpts.MinSize(config.BackgroundSelectorWidth, config.BackgroundSelectorHeight),
		),
		widget.ButtonOpts.Image(buttonImage),
		widget.ButtonOpts.Text(backgroundLabel(0), face, &widget.ButtonTextColor{Idle: color.Black}),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(5)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.Insets{
				Left: config.BackgroundSelectorX,
				Top:  config.BackgroundSelectorY,
			}),
		)),
	)
	root.AddChild(button)

	return &backgroundSelector{
		ui:     &ebitenui.UI{Container: root},
		button: button,
	}
}

// setLabel 更新按钮文字
func (s *backgroundSelector) setLabel(index int) {
	s.button.Text().Label = backgroundLabel(index)
}

// label 返回按钮当前文字
func (s *backgroundSelector) label() string {
	return s.button.Text().Label
}

func (s *backgroundSelector) update() {
	s.ui.Update()
}

func (s *backgroundSelector) draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
}

// backgroundLabel 背景名，如 "BACKGROUND1"
func backgroundLabel(index int) string {
	return fmt.Sprintf("BACKGROUND%d", index+1)
}
