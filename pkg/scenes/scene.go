package scenes

import (
	"github.com/decker502/felisbattle/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Host 承载战斗画面的宿主视图
// 战斗画面在帧推进、状态变化和战斗结束时请求宿主重绘
type Host interface {
	RequestRedraw()
}
