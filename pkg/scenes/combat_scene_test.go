package scenes

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

const testDelta = 1.0 / 60.0

const testCombatYAML = `
retaliation: {trigger: TRIGGER, delay: 0.7}
backgrounds: [bg1.png, bg2.png, bg3.png, bg4.png, bg5.png, bg6.png, bg7.png, bg8.png]
player:
  name: Felis
  idleFrames: {pattern: "felis/idle%d.png", count: 4}
enemy:
  name: Browney
  idleFrames: {pattern: "browney/idle%d.png", count: 4}
skills:
  - {id: 1, baseDamage: 15, randomRange: 5, framePeriod: 0.1, frames: {pattern: "s1/%d.png", count: 8}, sound: s1.ogg}
  - {id: 2, baseDamage: 8, randomRange: 5, framePeriod: 0.1, frames: {pattern: "s2/%d.png", count: 8}, area: {x: 130, y: 300, width: 224, height: 240}}
  - {id: 3, baseDamage: 22, randomRange: 5, framePeriod: 0.1, frames: {pattern: "s3/%d.png", count: 12}}
enemySkill:
  baseDamage: 5
  randomRange: 5
  framePeriod: 0.08
  frames: {pattern: "enemy/%d.png", count: 10}
`

// battleEntityCount 两名战斗者 + 三个玩家技能 + 三个按钮 + 一个敌人技能
const battleEntityCount = 9

// constRandom 总是返回固定值（超出范围时取 n-1）
type constRandom int

func (r constRandom) Intn(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

// countingHost 记录重绘请求次数
type countingHost struct{ redraws int }

func (h *countingHost) RequestRedraw() { h.redraws++ }

func testCombatConfig(t *testing.T, trigger string) *config.CombatConfig {
	t.Helper()
	cfg, err := config.ParseCombatConfig([]byte(strings.Replace(testCombatYAML, "TRIGGER", trigger, 1)))
	if err != nil {
		t.Fatalf("ParseCombatConfig failed: %v", err)
	}
	return cfg
}

// testDeps 资源全部缺失（使用占位图），不播放音效
func testDeps(t *testing.T, trigger string, roll int) CombatDeps {
	t.Helper()
	return CombatDeps{
		Config:    testCombatConfig(t, trigger),
		Resources: game.NewResourceManager(fstest.MapFS{}, nil, 8),
		Rand:      constRandom(roll),
	}
}

func newTestCombat(t *testing.T, trigger string, roll int) (*CombatScreen, *countingHost) {
	t.Helper()
	host := &countingHost{}
	deps := testDeps(t, trigger, roll)
	deps.Host = host

	c := NewCombatScreen(deps)
	c.setCursorShape = func(ebiten.CursorShapeType) {}
	return c, host
}

func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	m, err := gdata.Open(gdata.Config{AppName: "felisbattle_scenes_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func advance(c *CombatScreen, seconds float64) {
	for i := 0; i < int(seconds*60+0.5); i++ {
		c.Advance(testDelta)
	}
}

func TestNewCombatScreenInactive(t *testing.T) {
	c, _ := newTestCombat(t, config.RetaliationTriggerAnimation, 0)

	if c.IsActive() {
		t.Error("New combat screen should not be active")
	}
	s := c.State()
	if s.StatusText != game.StatusChooseAction {
		t.Errorf("Initial status: got %q", s.StatusText)
	}
	if c.entityManager.Count() != 0 {
		t.Errorf("No battle entities expected before start, got %d", c.entityManager.Count())
	}
	if c.renderSystem.Background() == nil {
		t.Error("Background should fall back to a generated image")
	}
}

// TestStartCombat 开始战斗：满血、状态文字、实体创建并请求重绘
func TestStartCombat(t *testing.T) {
	c, host := newTestCombat(t, config.RetaliationTriggerAnimation, 0)
	c.StartCombat()

	s := c.State()
	if !c.IsActive() || !s.CombatActive {
		t.Fatal("Expected combat to be active")
	}
	if s.PlayerHP != 100 || s.EnemyHP != 100 || s.EnemyDefeated {
		t.Errorf("Unexpected start state: %+v", s)
	}
	if s.StatusText != game.StatusBattleStarted {
		t.Errorf("Status: got %q, want %q", s.StatusText, game.StatusBattleStarted)
	}
	if n := c.entityManager.Count(); n != battleEntityCount {
		t.Errorf("Expected %d battle entities, got %d", battleEntityCount, n)
	}
	if host.redraws == 0 {
		t.Error("Expected a redraw request on start")
	}
	if c.selector.label() != "BACKGROUND1" {
		t.Errorf("Selector label: got %q", c.selector.label())
	}

	// 待机动画推进时请求重绘
	before := host.redraws
	advance(c, 0.15)
	if host.redraws <= before {
		t.Error("Expected redraw requests while idle animations advance")
	}
}

// TestStartCombatWhileActive 战斗进行中再次开始不做任何事
func TestStartCombatWhileActive(t *testing.T) {
	c, _ := newTestCombat(t, config.RetaliationTriggerAnimation, 0)
	c.StartCombat()
	c.OnSkillPressed(1)

	c.StartCombat()
	if c.State().EnemyHP != 85 {
		t.Errorf("Second StartCombat must not reset the battle, enemy HP %d", c.State().EnemyHP)
	}
	if n := c.entityManager.Count(); n != battleEntityCount {
		t.Errorf("Second StartCombat must not duplicate entities, got %d", n)
	}
}

// TestInputIgnoredWhenInactive 战斗未开始时忽略所有输入
func TestInputIgnoredWhenInactive(t *testing.T) {
	c, _ := newTestCombat(t, config.RetaliationTriggerAnimation, 0)

	c.OnSkillPressed(1)
	c.OnMouseClicked(int(config.SkillButtonX(1))+10, int(config.SkillButtonY)+10)

	if s := c.State(); s.EnemyHP != 100 || s.StatusText != game.StatusChooseAction {
		t.Errorf("Inactive screen reacted to input: %+v", s)
	}
}

func TestOnSkillPressed(t *testing.T) {
	c, _ := newTestCombat(t, config.RetaliationTriggerAnimation, 0)
	c.StartCombat()

	c.OnSkillPressed(1)
	s := c.State()
	if s.EnemyHP != 85 {
		t.Errorf("Expected enemy HP 85, got %d", s.EnemyHP)
	}
	if s.StatusText != "Skill 1 hits the enemy for 15 damage!" {
		t.Errorf("Status: got %q", s.StatusText)
	}

	// 结算期间按钮禁用，其他技能键无效
	c.OnSkillPressed(3)
	if c.State().EnemyHP != 85 {
		t.Errorf("Skill 3 should be blocked during resolution, enemy HP %d", c.State().EnemyHP)
	}

	c.OnSkillPressed(0)
	c.OnSkillPressed(4)
	if c.State().EnemyHP != 85 {
		t.Error("Unknown skill numbers must be ignored")
	}
}

func TestOnMouseClicked(t *testing.T) {
	c, _ := newTestCombat(t, config.RetaliationTriggerAnimation, 0)
	c.StartCombat()

	// 按钮外
	c.OnMouseClicked(400, 100)
	if c.State().EnemyHP != 100 {
		t.Fatal("Click outside buttons cast a skill")
	}

	x := int(config.SkillButtonX(3) + config.SkillButtonWidth/2)
	y := int(config.SkillButtonY + config.SkillButtonHeight/2)
	c.OnMouseClicked(x, y)
	if c.State().EnemyHP != 78 {
		t.Errorf("Expected enemy HP 78 after skill 3, got %d", c.State().EnemyHP)
	}
}

// TestUpdateCursorOnHover 手型光标只在战斗中且指针位于按钮上时显示
func TestUpdateCursorOnHover(t *testing.T) {
	c, _ := newTestCombat(t, config.RetaliationTriggerAnimation, 0)
	var shapes []ebiten.CursorShapeType
	c.setCursorShape = func(s ebiten.CursorShapeType) { shapes = append(shapes, s) }

	bx := int(config.SkillButtonX(2)) + 5
	by := int(config.SkillButtonY) + 5

	c.UpdateCursorOnHover(bx, by)
	if c.cursorShape != ebiten.CursorShapeDefault {
		t.Error("Cursor must stay default while combat is inactive")
	}

	c.StartCombat()
	c.UpdateCursorOnHover(bx, by)
	if c.cursorShape != ebiten.CursorShapePointer {
		t.Error("Expected pointer cursor over a skill button")
	}
	c.UpdateCursorOnHover(bx, by)
	if len(shapes) != 1 {
		t.Errorf("Cursor shape should only be set on change, got %v", shapes)
	}

	c.UpdateCursorOnHover(10, 300)
	if c.cursorShape != ebiten.CursorShapeDefault {
		t.Error("Expected default cursor away from buttons")
	}

	c.UpdateCursorOnHover(bx, by)
	c.EndCombat()
	if c.cursorShape != ebiten.CursorShapeDefault {
		t.Error("EndCombat should restore the default cursor")
	}
}

// TestEndCombatCancelsRetaliation 结束战斗销毁全部实体，挂起的反击不会执行
func TestEndCombatCancelsRetaliation(t *testing.T) {
	for _, trigger := range []string{config.RetaliationTriggerAnimation, config.RetaliationTriggerDelay} {
		t.Run(trigger, func(t *testing.T) {
			c, host := newTestCombat(t, trigger, 0)
			c.StartCombat()
			c.OnSkillPressed(2)

			before := host.redraws
			c.EndCombat()
			if host.redraws <= before {
				t.Error("EndCombat should request a redraw")
			}
			if c.IsActive() {
				t.Error("Combat should be inactive")
			}
			if n := c.entityManager.Count(); n != 0 {
				t.Errorf("Expected all battle entities destroyed, %d left", n)
			}

			advance(c, 2.0)
			if c.State().PlayerHP != 100 {
				t.Errorf("Retaliation fired after EndCombat, player HP %d", c.State().PlayerHP)
			}
		})
	}
}

// TestRestartAfterEnd 结束后重新开始得到一场全新的战斗
func TestRestartAfterEnd(t *testing.T) {
	c, _ := newTestCombat(t, config.RetaliationTriggerAnimation, 0)
	c.StartCombat()
	c.OnSkillPressed(3)
	advance(c, 1.5)
	c.EndCombat()

	c.StartCombat()
	s := c.State()
	if s.PlayerHP != 100 || s.EnemyHP != 100 || !s.SkillsEnabled || s.RetaliationPending {
		t.Errorf("Restarted battle not reset: %+v", s)
	}
	if n := c.entityManager.Count(); n != battleEntityCount {
		t.Errorf("Expected %d entities after restart, got %d", battleEntityCount, n)
	}
}

// TestFullBattle 反复出招直到敌人倒下
func TestFullBattle(t *testing.T) {
	c, _ := newTestCombat(t, config.RetaliationTriggerAnimation, 0)
	c.StartCombat()

	lastEnemy := 100
	casts := 0
	for i := 0; i < 2000 && !c.State().EnemyDefeated; i++ {
		if c.State().SkillsEnabled {
			c.OnSkillPressed(casts%3 + 1)
			casts++
		}
		c.Advance(testDelta)

		s := c.State()
		if s.EnemyHP > lastEnemy {
			t.Fatalf("Enemy HP increased: %d -> %d", lastEnemy, s.EnemyHP)
		}
		lastEnemy = s.EnemyHP
	}

	s := c.State()
	if !s.EnemyDefeated || s.EnemyHP != 0 {
		t.Fatalf("Expected enemy defeated, got %+v", s)
	}
	if s.StatusText != game.StatusEnemyDefeated {
		t.Errorf("Status: got %q", s.StatusText)
	}
	// 15 + 8 + 22 + 15 + 8 + 22 + 15 = 105，第 7 次出招击败敌人，之前 6 次反击各 5 点
	if casts != 7 {
		t.Errorf("Expected 7 casts, got %d", casts)
	}
	if s.PlayerHP != 70 {
		t.Errorf("Expected player HP 70, got %d", s.PlayerHP)
	}

	playerHP := s.PlayerHP
	advance(c, 3.0)
	c.OnSkillPressed(1)
	if c.State().PlayerHP != playerHP || c.State().EnemyHP != 0 {
		t.Error("Nothing should happen after the enemy is defeated")
	}
}

func TestSelectBackground(t *testing.T) {
	c, host := newTestCombat(t, config.RetaliationTriggerAnimation, 0)

	if c.SelectBackground(-1) || c.SelectBackground(8) {
		t.Error("Out of range background index accepted")
	}

	before := host.redraws
	if !c.SelectBackground(5) {
		t.Fatal("SelectBackground(5) failed")
	}
	if c.State().SelectedBackground != 5 || c.selector.label() != "BACKGROUND6" {
		t.Errorf("Selection not applied: index %d label %q", c.State().SelectedBackground, c.selector.label())
	}
	if host.redraws <= before {
		t.Error("Selecting a background should request a redraw")
	}

	c.SelectBackground(7)
	c.NextBackground()
	if c.State().SelectedBackground != 0 {
		t.Errorf("NextBackground should wrap to 0, got %d", c.State().SelectedBackground)
	}
	c.PreviousBackground()
	if c.State().SelectedBackground != 7 {
		t.Errorf("PreviousBackground should wrap to 7, got %d", c.State().SelectedBackground)
	}

	// 背景选择在战斗之间保留
	c.StartCombat()
	c.EndCombat()
	c.StartCombat()
	if c.State().SelectedBackground != 7 {
		t.Errorf("Selection lost across battles: %d", c.State().SelectedBackground)
	}
}

// TestSelectBackgroundPersisted 背景选择写入设置，新的画面读取保存的值
func TestSelectBackgroundPersisted(t *testing.T) {
	gm := openTestGdata(t)

	deps := testDeps(t, config.RetaliationTriggerAnimation, 0)
	deps.Settings = game.NewSettingsManager(gm)
	c := NewCombatScreen(deps)
	c.setCursorShape = func(ebiten.CursorShapeType) {}
	c.SelectBackground(3)

	deps2 := testDeps(t, config.RetaliationTriggerAnimation, 0)
	deps2.Settings = game.NewSettingsManager(gm)
	c2 := NewCombatScreen(deps2)

	if got := c2.State().SelectedBackground; got != 3 {
		t.Errorf("Expected persisted background 3, got %d", got)
	}
	if c2.selector.label() != "BACKGROUND4" {
		t.Errorf("Selector label: got %q", c2.selector.label())
	}
}
