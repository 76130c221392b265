package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validCombatYAML 最小可用的战斗配置
const validCombatYAML = `
backgrounds: [bg1.png, bg2.png, bg3.png, bg4.png, bg5.png, bg6.png, bg7.png, bg8.png]
player:
  name: Felis
  idleFrames: {pattern: "felis/idle%d.png", count: 4}
enemy:
  name: Browney
  idleFrames: {pattern: "browney/idle%d.png", count: 4}
skills:
  - {id: 1, baseDamage: 15, randomRange: 5, framePeriod: 0.1, frames: {pattern: "s1/%d.png", count: 8}}
  - {id: 2, baseDamage: 8, randomRange: 5, framePeriod: 0.1, frames: {pattern: "s2/%d.png", count: 8}, area: {x: 130, y: 300, width: 224, height: 240}}
  - {id: 3, baseDamage: 22, randomRange: 5, framePeriod: 0.1, frames: {pattern: "s3/%d.png", count: 12}}
enemySkill:
  baseDamage: 5
  randomRange: 5
  framePeriod: 0.08
  frames: {pattern: "enemy/%d.png", count: 10}
`

func TestParseCombatConfigDefaults(t *testing.T) {
	cfg, err := ParseCombatConfig([]byte(validCombatYAML))
	if err != nil {
		t.Fatalf("ParseCombatConfig failed: %v", err)
	}

	if cfg.IdleFramePeriod != 0.15 {
		t.Errorf("IdleFramePeriod: expected default 0.15, got %v", cfg.IdleFramePeriod)
	}
	if cfg.PlaceholderSize != 64 {
		t.Errorf("PlaceholderSize: expected default 64, got %d", cfg.PlaceholderSize)
	}
	if cfg.Retaliation.Trigger != RetaliationTriggerAnimation {
		t.Errorf("Retaliation.Trigger: expected %q, got %q", RetaliationTriggerAnimation, cfg.Retaliation.Trigger)
	}
	if cfg.Retaliation.Delay != 0.7 {
		t.Errorf("Retaliation.Delay: expected 0.7, got %v", cfg.Retaliation.Delay)
	}
	if cfg.Skills[1].Label != "Skill 2" {
		t.Errorf("Skill label default: expected 'Skill 2', got %q", cfg.Skills[1].Label)
	}
	if cfg.EnemySkill.Label != "Skill 1" {
		t.Errorf("Enemy skill label default: expected 'Skill 1', got %q", cfg.EnemySkill.Label)
	}
	if cfg.Player.HPLabel != "Player" || cfg.Enemy.HPLabel != "Enemy" {
		t.Errorf("HP labels: got %q / %q", cfg.Player.HPLabel, cfg.Enemy.HPLabel)
	}

	skill, ok := cfg.GetSkill(2)
	if !ok {
		t.Fatal("GetSkill(2) not found")
	}
	if skill.Area == nil || skill.Area.Width != 224 || skill.Area.Height != 240 {
		t.Errorf("Skill 2 area mismatch: %+v", skill.Area)
	}
	if _, ok := cfg.GetSkill(4); ok {
		t.Error("GetSkill(4) should not exist")
	}
}

func TestParseCombatConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name: "随机范围为0",
			mutate: func(s string) string {
				return strings.Replace(s, "baseDamage: 15, randomRange: 5", "baseDamage: 15, randomRange: 0", 1)
			},
			wantErr: "randomRange",
		},
		{
			name:    "负伤害",
			mutate:  func(s string) string { return strings.Replace(s, "baseDamage: 22", "baseDamage: -1", 1) },
			wantErr: "baseDamage",
		},
		{
			name:    "技能编号错误",
			mutate:  func(s string) string { return strings.Replace(s, "{id: 3,", "{id: 4,", 1) },
			wantErr: "id must be 3",
		},
		{
			name:    "帧数为0",
			mutate:  func(s string) string { return strings.Replace(s, `"s1/%d.png", count: 8`, `"s1/%d.png", count: 0`, 1) },
			wantErr: "count must be positive",
		},
		{
			name:    "帧模板缺少%d",
			mutate:  func(s string) string { return strings.Replace(s, `"enemy/%d.png"`, `"enemy/x.png"`, 1) },
			wantErr: "must contain",
		},
		{
			name:    "背景数量错误",
			mutate:  func(s string) string { return strings.Replace(s, ", bg8.png", "", 1) },
			wantErr: "backgrounds",
		},
		{
			name:    "未知反击触发方式",
			mutate:  func(s string) string { return s + "retaliation: {trigger: never}\n" },
			wantErr: "retaliation.trigger",
		},
		{
			name:    "无效YAML",
			mutate:  func(s string) string { return s + "skills: [\n" },
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCombatConfig([]byte(tt.mutate(validCombatYAML)))
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFrameSetConfigFramePaths(t *testing.T) {
	frames := FrameSetConfig{Pattern: "res/S1A%d.png", Count: 3}
	got := frames.FramePaths()
	want := []string{"res/S1A1.png", "res/S1A2.png", "res/S1A3.png"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d paths, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}

	explicit := FrameSetConfig{Pattern: "ignored%d", Count: 9, Paths: []string{"a.png", "b.png"}}
	if explicit.FrameCount() != 2 {
		t.Errorf("Explicit paths should take precedence, got count %d", explicit.FrameCount())
	}
}

func TestLoadCombatConfigFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combat.yaml")
	if err := os.WriteFile(path, []byte(validCombatYAML), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadCombatConfig(path)
	if err != nil {
		t.Fatalf("LoadCombatConfig failed: %v", err)
	}
	if cfg.Enemy.Name != "Browney" {
		t.Errorf("Enemy name: expected Browney, got %q", cfg.Enemy.Name)
	}

	if _, err := LoadCombatConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestShippedCombatConfig 验证仓库自带的 data/combat.yaml 合法且与原始数值一致
func TestShippedCombatConfig(t *testing.T) {
	cfg, err := LoadCombatConfig(filepath.Join("..", "..", "data", "combat.yaml"))
	if err != nil {
		t.Fatalf("Shipped combat.yaml is invalid: %v", err)
	}

	wantSkills := []struct {
		base, rng, frames int
	}{
		{15, 5, 8},
		{8, 5, 8},
		{22, 5, 12},
	}
	for i, want := range wantSkills {
		skill := cfg.Skills[i]
		if skill.BaseDamage != want.base || skill.RandomRange != want.rng || skill.Frames.FrameCount() != want.frames {
			t.Errorf("skill %d: got base=%d range=%d frames=%d", skill.ID, skill.BaseDamage, skill.RandomRange, skill.Frames.FrameCount())
		}
		if skill.FramePeriod != 0.1 {
			t.Errorf("skill %d: framePeriod expected 0.1, got %v", skill.ID, skill.FramePeriod)
		}
	}

	if cfg.EnemySkill.Frames.FrameCount() != 10 || cfg.EnemySkill.FramePeriod != 0.08 {
		t.Errorf("enemy skill: frames=%d period=%v", cfg.EnemySkill.Frames.FrameCount(), cfg.EnemySkill.FramePeriod)
	}
	if cfg.Player.IdleFrames.FrameCount() != 4 || cfg.Enemy.IdleFrames.FrameCount() != 4 {
		t.Error("idle frame sets must have 4 frames each")
	}
	if got := cfg.Backgrounds[0]; got != "res/Entities/Combat/background for battle/BACKGROUND1.png" {
		t.Errorf("background[0]: got %q", got)
	}

	paths := cfg.AllAssetPaths()
	// 8 背景 + 4 + 4 待机 + 8 + 8 + 12 + 10 技能帧 + 4 音效 + 1 字体
	if len(paths) != 59 {
		t.Errorf("AllAssetPaths: expected 59 unique paths, got %d", len(paths))
	}
}

func TestSkillButtonX(t *testing.T) {
	tests := []struct {
		skill int
		want  float64
	}{
		{1, 360},
		{2, 490},
		{3, 620},
		{0, 0},
		{4, 0},
	}
	for _, tt := range tests {
		if got := SkillButtonX(tt.skill); got != tt.want {
			t.Errorf("SkillButtonX(%d) = %v, want %v", tt.skill, got, tt.want)
		}
	}
}
