package scenes

import (
	"log"
)

// SelectBackground 切换战斗背景并持久化选择
// 索引越界时不做任何事并返回 false
func (c *CombatScreen) SelectBackground(index int) bool {
	if index < 0 || index >= len(c.cfg.Backgrounds) {
		log.Printf("[CombatScreen] Background index %d out of range [0, %d)", index, len(c.cfg.Backgrounds))
		return false
	}

	c.state.SelectedBackground = index
	c.loadBackground(index)
	c.selector.setLabel(index)

	if c.settings != nil {
		c.settings.SetBackgroundIndex(index)
		if err := c.settings.Save(); err != nil {
			log.Printf("[CombatScreen] Warning: failed to save background selection: %v", err)
		}
	}

	c.requestRedraw()
	return true
}

// NextBackground 选择下一个背景（循环）
func (c *CombatScreen) NextBackground() {
	n := len(c.cfg.Backgrounds)
	c.SelectBackground((c.state.SelectedBackground + 1) % n)
}

// PreviousBackground 选择上一个背景（循环）
func (c *CombatScreen) PreviousBackground() {
	n := len(c.cfg.Backgrounds)
	c.SelectBackground((c.state.SelectedBackground - 1 + n) % n)
}

// loadBackground 加载背景图，失败时 ResourceManager 返回生成的双色背景
func (c *CombatScreen) loadBackground(index int) {
	if index < 0 || index >= len(c.cfg.Backgrounds) {
		index = 0
	}
	c.renderSystem.SetBackground(c.resources.LoadBackground(c.cfg.Backgrounds[index]))
}
