package config

import (
	"fmt"
	"strings"

	"github.com/decker502/felisbattle/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultCombatConfigPath 嵌入的默认战斗配置文件路径
const DefaultCombatConfigPath = "data/combat.yaml"

// 反击触发方式
const (
	// RetaliationTriggerAnimation 玩家技能动画播放完毕时触发敌人反击
	RetaliationTriggerAnimation = "animation"
	// RetaliationTriggerDelay 玩家出招后经过固定延迟触发敌人反击
	RetaliationTriggerDelay = "delay"
)

// PlayerSkillCount 玩家技能数量（对应三个技能按钮和数字键 1/2/3）
const PlayerSkillCount = 3

// BackgroundCount 可选战斗背景数量
const BackgroundCount = 8

// FrameSetConfig 描述一组按顺序播放的动画帧
//
// 两种写法二选一：
//
//	frames:
//	  pattern: res/Entities/Combat/felis skill 1/S1A%d.png  # %d 从 1 开始
//	  count: 8
//
//	frames:
//	  paths: [a.png, b.png]
type FrameSetConfig struct {
	Pattern string   `yaml:"pattern,omitempty"` // 帧路径模板，包含一个 %d
	Count   int      `yaml:"count,omitempty"`   // 帧数量
	Paths   []string `yaml:"paths,omitempty"`   // 显式帧路径列表（优先于 pattern）
}

// FramePaths 展开为有序的帧路径列表
func (f FrameSetConfig) FramePaths() []string {
	if len(f.Paths) > 0 {
		paths := make([]string, len(f.Paths))
		copy(paths, f.Paths)
		return paths
	}

	paths := make([]string, 0, f.Count)
	for i := 1; i <= f.Count; i++ {
		paths = append(paths, fmt.Sprintf(f.Pattern, i))
	}
	return paths
}

// FrameCount 返回帧数量
func (f FrameSetConfig) FrameCount() int {
	if len(f.Paths) > 0 {
		return len(f.Paths)
	}
	return f.Count
}

// AreaConfig 技能动画的绘制区域（屏幕坐标）
// 未配置时技能动画铺满整个屏幕
type AreaConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SkillConfig 单个技能的配置
type SkillConfig struct {
	ID          int            `yaml:"id"`             // 技能编号（玩家技能 1..3）
	Label       string         `yaml:"label"`          // 按钮文字 / 状态文字中的技能名
	BaseDamage  int            `yaml:"baseDamage"`     // 基础伤害
	RandomRange int            `yaml:"randomRange"`    // 随机附加伤害范围 [0, randomRange-1]
	FramePeriod float64        `yaml:"framePeriod"`    // 每帧时长（秒）
	Frames      FrameSetConfig `yaml:"frames"`         // 动画帧
	Area        *AreaConfig    `yaml:"area,omitempty"` // 绘制区域（可选）
	Sound       string         `yaml:"sound,omitempty"`
}

// CombatantConfig 战斗者（玩家 / 敌人）配置
type CombatantConfig struct {
	Name       string         `yaml:"name"`    // 角色名（状态文字使用）
	HPLabel    string         `yaml:"hpLabel"` // 血条标签
	IdleFrames FrameSetConfig `yaml:"idleFrames"`
}

// RetaliationConfig 敌人反击配置
type RetaliationConfig struct {
	Trigger string  `yaml:"trigger"` // animation | delay
	Delay   float64 `yaml:"delay"`   // delay 模式下的延迟（秒）
}

// FontConfig 字体配置
type FontConfig struct {
	Path string `yaml:"path"` // TTF 路径；加载失败时使用内置字体
}

// CombatConfig 战斗画面配置文件结构（data/combat.yaml）
type CombatConfig struct {
	Version         string            `yaml:"version"`
	Font            FontConfig        `yaml:"font"`
	PlaceholderSize int               `yaml:"placeholderSize"` // 帧加载失败时占位图边长
	IdleFramePeriod float64           `yaml:"idleFramePeriod"` // 待机动画每帧时长（秒）
	Retaliation     RetaliationConfig `yaml:"retaliation"`
	Backgrounds     []string          `yaml:"backgrounds"`
	Player          CombatantConfig   `yaml:"player"`
	Enemy           CombatantConfig   `yaml:"enemy"`
	Skills          []SkillConfig     `yaml:"skills"`
	EnemySkill      SkillConfig       `yaml:"enemySkill"`
}

// LoadCombatConfig 从 YAML 文件加载战斗配置
// 参数：
//
//	filepath - 配置文件路径（"data/" 开头时优先读取嵌入文件）
//
// 返回：
//
//	*CombatConfig - 解析并校验后的配置
//	error - 文件读取、解析或校验失败
func LoadCombatConfig(filepath string) (*CombatConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read combat config %s: %w", filepath, err)
	}

	cfg, err := ParseCombatConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid combat config %s: %w", filepath, err)
	}

	return cfg, nil
}

// ParseCombatConfig 解析 YAML 数据，补全默认值并校验
func ParseCombatConfig(data []byte) (*CombatConfig, error) {
	var cfg CombatConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyCombatDefaults(&cfg)

	if err := validateCombatConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyCombatDefaults 为可省略字段填充默认值
func applyCombatDefaults(cfg *CombatConfig) {
	if cfg.PlaceholderSize == 0 {
		cfg.PlaceholderSize = 64
	}
	if cfg.IdleFramePeriod == 0 {
		cfg.IdleFramePeriod = 0.15
	}
	if cfg.Retaliation.Trigger == "" {
		cfg.Retaliation.Trigger = RetaliationTriggerAnimation
	}
	if cfg.Retaliation.Delay == 0 {
		cfg.Retaliation.Delay = 0.7
	}
	if cfg.Player.HPLabel == "" {
		cfg.Player.HPLabel = "Player"
	}
	if cfg.Enemy.HPLabel == "" {
		cfg.Enemy.HPLabel = "Enemy"
	}
	for i := range cfg.Skills {
		if cfg.Skills[i].Label == "" {
			cfg.Skills[i].Label = fmt.Sprintf("Skill %d", cfg.Skills[i].ID)
		}
	}
	if cfg.EnemySkill.Label == "" {
		cfg.EnemySkill.Label = "Skill 1"
	}
}

// validateCombatConfig 验证战斗配置的完整性和合法性
func validateCombatConfig(cfg *CombatConfig) error {
	if cfg.IdleFramePeriod <= 0 {
		return fmt.Errorf("idleFramePeriod must be positive, got %v", cfg.IdleFramePeriod)
	}

	if cfg.PlaceholderSize <= 0 {
		return fmt.Errorf("placeholderSize must be positive, got %d", cfg.PlaceholderSize)
	}

	switch cfg.Retaliation.Trigger {
	case RetaliationTriggerAnimation, RetaliationTriggerDelay:
	default:
		return fmt.Errorf("retaliation.trigger must be %q or %q, got %q",
			RetaliationTriggerAnimation, RetaliationTriggerDelay, cfg.Retaliation.Trigger)
	}
	if cfg.Retaliation.Delay < 0 {
		return fmt.Errorf("retaliation.delay cannot be negative, got %v", cfg.Retaliation.Delay)
	}

	if len(cfg.Backgrounds) != BackgroundCount {
		return fmt.Errorf("expected %d backgrounds, got %d", BackgroundCount, len(cfg.Backgrounds))
	}

	if err := validateFrameSet("player.idleFrames", cfg.Player.IdleFrames); err != nil {
		return err
	}
	if err := validateFrameSet("enemy.idleFrames", cfg.Enemy.IdleFrames); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Enemy.Name) == "" {
		return fmt.Errorf("enemy.name is required")
	}

	if len(cfg.Skills) != PlayerSkillCount {
		return fmt.Errorf("expected %d player skills, got %d", PlayerSkillCount, len(cfg.Skills))
	}
	for i, skill := range cfg.Skills {
		if skill.ID != i+1 {
			return fmt.Errorf("skills[%d]: id must be %d, got %d", i, i+1, skill.ID)
		}
		if err := validateSkill(fmt.Sprintf("skills[%d]", i), skill); err != nil {
			return err
		}
	}

	if err := validateSkill("enemySkill", cfg.EnemySkill); err != nil {
		return err
	}

	return nil
}

// validateSkill 校验单个技能配置
func validateSkill(name string, skill SkillConfig) error {
	if skill.BaseDamage < 0 {
		return fmt.Errorf("%s: baseDamage cannot be negative, got %d", name, skill.BaseDamage)
	}
	if skill.RandomRange < 1 {
		return fmt.Errorf("%s: randomRange must be at least 1, got %d", name, skill.RandomRange)
	}
	if skill.FramePeriod <= 0 {
		return fmt.Errorf("%s: framePeriod must be positive, got %v", name, skill.FramePeriod)
	}
	if skill.Area != nil && (skill.Area.Width <= 0 || skill.Area.Height <= 0) {
		return fmt.Errorf("%s: area must have positive size, got %dx%d", name, skill.Area.Width, skill.Area.Height)
	}
	return validateFrameSet(name+".frames", skill.Frames)
}

// validateFrameSet 校验帧集合：至少一帧，pattern 必须包含 %d
func validateFrameSet(name string, frames FrameSetConfig) error {
	if len(frames.Paths) > 0 {
		return nil
	}
	if frames.Count <= 0 {
		return fmt.Errorf("%s: count must be positive, got %d", name, frames.Count)
	}
	if !strings.Contains(frames.Pattern, "%d") {
		return fmt.Errorf("%s: pattern %q must contain %%d", name, frames.Pattern)
	}
	return nil
}

// GetSkill 按技能编号查找玩家技能
// 如果技能不存在，返回 nil 和 false
func (c *CombatConfig) GetSkill(id int) (*SkillConfig, bool) {
	for i := range c.Skills {
		if c.Skills[i].ID == id {
			return &c.Skills[i], true
		}
	}
	return nil, false
}

// AllAssetPaths 返回配置引用的所有资源路径（去重，保持出现顺序）
// 供资源检查工具使用
func (c *CombatConfig) AllAssetPaths() []string {
	seen := make(map[string]bool)
	paths := make([]string, 0, 64)
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		paths = append(paths, p)
	}

	for _, bg := range c.Backgrounds {
		add(bg)
	}
	for _, p := range c.Player.IdleFrames.FramePaths() {
		add(p)
	}
	for _, p := range c.Enemy.IdleFrames.FramePaths() {
		add(p)
	}
	for _, skill := range append(append([]SkillConfig{}, c.Skills...), c.EnemySkill) {
		for _, p := range skill.Frames.FramePaths() {
			add(p)
		}
		add(skill.Sound)
	}
	add(c.Font.Path)

	return paths
}
