package systems

import (
	"log"

	"github.com/decker502/felisbattle/pkg/components"
	"github.com/decker502/felisbattle/pkg/ecs"
)

// frameEpsilon 吸收 1/60 秒累加产生的浮点误差（6 * 1/60 应当等于 0.1）
const frameEpsilon = 1e-9

// AnimationSystem 管理所有实体的帧动画（战斗的动画时钟）
//
// 循环动画（待机）：index = (index + 1) mod frameCount，永不结束。
// 非循环动画（技能）：index 每次 +1，到达 frameCount 时重置为 0、停止播放，
// 并在本次 Update 的所有推进完成后调用 OnFinished。
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Update 推进所有正在播放的动画
// 返回 true 表示至少有一个动画换帧或结束（需要重绘）
func (s *AnimationSystem) Update(deltaTime float64) bool {
	entities := ecs.GetEntitiesWith1[*components.AnimationComponent](s.entityManager)

	changed := false
	var finished []func()

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)

		if !anim.IsPlaying || len(anim.Frames) == 0 || anim.FramePeriod <= 0 {
			continue
		}

		anim.FrameCounter += deltaTime

		// 一次 Update 可能跨越多个帧周期
		for anim.IsPlaying && anim.FrameCounter+frameEpsilon >= anim.FramePeriod {
			anim.FrameCounter -= anim.FramePeriod
			changed = true

			if anim.IsLooping {
				anim.CurrentFrame = (anim.CurrentFrame + 1) % len(anim.Frames)
				continue
			}

			anim.CurrentFrame++
			if anim.CurrentFrame >= len(anim.Frames) {
				anim.CurrentFrame = 0
				anim.FrameCounter = 0
				anim.IsPlaying = false
				log.Printf("[AnimationSystem] 动画播放完成 (实体ID: %d, 帧数: %d)", id, len(anim.Frames))
				if anim.OnFinished != nil {
					finished = append(finished, anim.OnFinished)
				}
			}
		}

		if anim.FrameCounter < 0 {
			anim.FrameCounter = 0
		}
	}

	// 回调可能修改实体（例如触发敌人反击重启另一个动画），放在遍历之后执行
	for _, cb := range finished {
		cb()
	}

	return changed
}

// Restart 从第 0 帧开始播放动画
func Restart(anim *components.AnimationComponent) {
	anim.CurrentFrame = 0
	anim.FrameCounter = 0
	anim.IsPlaying = true
}

// Stop 停止动画并回到第 0 帧
func Stop(anim *components.AnimationComponent) {
	anim.CurrentFrame = 0
	anim.FrameCounter = 0
	anim.IsPlaying = false
}
