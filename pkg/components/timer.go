package components

// TimerComponent 一次性计时器组件
// 用于处理需要时间延迟的行为（如 delay 模式下的敌人反击）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "enemy_retaliation"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成

	// OnFire 计时完成时调用一次
	OnFire func()
}
