package systems

import (
	"log"

	"github.com/decker502/felisbattle/pkg/components"
	"github.com/decker502/felisbattle/pkg/ecs"
)

// TimerSystem 驱动一次性计时器
// 计时完成的实体被标记删除，OnFire 在遍历结束后按实体 ID 顺序调用
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// Update 累加所有未完成计时器的时间
func (s *TimerSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager)

	var fired []func()
	for _, id := range entities {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if timer.IsReady {
			continue
		}

		timer.CurrentTime += deltaTime
		if timer.CurrentTime+frameEpsilon < timer.TargetTime {
			continue
		}

		timer.IsReady = true
		s.entityManager.DestroyEntity(id)
		log.Printf("[TimerSystem] 计时器 %s 完成 (实体ID: %d)", timer.Name, id)
		if timer.OnFire != nil {
			fired = append(fired, timer.OnFire)
		}
	}

	for _, cb := range fired {
		cb()
	}
}

// NewTimer 创建一个一次性计时器实体
func NewTimer(em *ecs.EntityManager, name string, seconds float64, onFire func()) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TimerComponent{
		Name:       name,
		TargetTime: seconds,
		OnFire:     onFire,
	})
	return id
}
