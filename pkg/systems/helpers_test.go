package systems

import (
	"image"

	"github.com/decker502/felisbattle/pkg/components"
	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/ecs"
	"github.com/decker502/felisbattle/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

const testDelta = 1.0 / 60.0

// fixedRandom 总是返回固定值（超出范围时取 n-1）
type fixedRandom struct{ value int }

func (r fixedRandom) Intn(n int) int {
	if r.value >= n {
		return n - 1
	}
	return r.value
}

// maxRandom 总是返回 n-1
type maxRandom struct{}

func (maxRandom) Intn(n int) int { return n - 1 }

// recordingSounds 记录播放过的音效
type recordingSounds struct{ played []string }

func (r *recordingSounds) PlaySound(path string) bool {
	r.played = append(r.played, path)
	return true
}

func testFrames(n int) []*ebiten.Image {
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		frames[i] = ebiten.NewImage(4, 4)
	}
	return frames
}

// testBattle 一场最小化的战斗：两个战斗者、三个玩家技能、一个敌人技能和三个按钮
type testBattle struct {
	em      *ecs.EntityManager
	state   *game.BattleState
	turns   *TurnSystem
	anims   *AnimationSystem
	timers  *TimerSystem
	buttons *ButtonSystem
	sounds  *recordingSounds

	playerSkills map[int]ecs.EntityID
	enemySkill   ecs.EntityID
	redraws      int
}

func newTestBattle(trigger string, rng RandomSource) *testBattle {
	em := ecs.NewEntityManager()
	state := game.NewBattleState()
	state.Reset()
	state.CombatActive = true

	b := &testBattle{
		em:           em,
		state:        state,
		anims:        NewAnimationSystem(em),
		timers:       NewTimerSystem(em),
		buttons:      NewButtonSystem(em),
		sounds:       &recordingSounds{},
		playerSkills: make(map[int]ecs.EntityID),
	}
	b.turns = NewTurnSystem(em, state, TurnConfig{
		EnemyName:   "Browney",
		Retaliation: config.RetaliationConfig{Trigger: trigger, Delay: 0.7},
	}, rng, b.sounds)
	b.turns.OnStateChanged = func() { b.redraws++ }

	for _, side := range []components.Side{components.SidePlayer, components.SideEnemy} {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.CombatantComponent{Side: side})
		ecs.AddComponent(em, id, &components.AnimationComponent{
			Frames: testFrames(4), FramePeriod: 0.15, IsLooping: true, IsPlaying: true,
		})
	}

	skills := []struct {
		id, base, frames int
		area             image.Rectangle
	}{
		{1, 15, 8, image.Rectangle{}},
		{2, 8, 8, image.Rect(130, 300, 354, 540)},
		{3, 22, 12, image.Rectangle{}},
	}
	for _, sk := range skills {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.SkillComponent{
			ID: sk.id, Caster: components.SidePlayer, Label: "Skill", BaseDamage: sk.base,
			RandomRange: 5, Sound: "skill.ogg", Area: sk.area,
		})
		ecs.AddComponent(em, id, &components.AnimationComponent{Frames: testFrames(sk.frames), FramePeriod: 0.1})
		b.playerSkills[sk.id] = id

		skillID := sk.id
		btn := em.CreateEntity()
		ecs.AddComponent(em, btn, &components.PositionComponent{X: config.SkillButtonX(skillID), Y: config.SkillButtonY})
		ecs.AddComponent(em, btn, &components.ButtonComponent{
			Text: "Skill", Width: config.SkillButtonWidth, Height: config.SkillButtonHeight,
			Enabled: true, Visible: true, SkillID: skillID,
			OnClick: func() { b.turns.CastPlayerSkill(skillID) },
		})
	}

	b.enemySkill = em.CreateEntity()
	ecs.AddComponent(em, b.enemySkill, &components.SkillComponent{
		ID: 1, Caster: components.SideEnemy, Label: "Skill 1", BaseDamage: 5, RandomRange: 5,
	})
	ecs.AddComponent(em, b.enemySkill, &components.AnimationComponent{Frames: testFrames(10), FramePeriod: 0.08})

	return b
}

// tick 推进一帧（与 CombatScreen.Update 的系统顺序一致）
func (b *testBattle) tick() {
	b.anims.Update(testDelta)
	b.timers.Update(testDelta)
	b.em.RemoveMarkedEntities()
}

// run 推进指定秒数
func (b *testBattle) run(seconds float64) {
	for i := 0; i < int(seconds*60+0.5); i++ {
		b.tick()
	}
}

func (b *testBattle) anim(id ecs.EntityID) *components.AnimationComponent {
	a, _ := ecs.GetComponent[*components.AnimationComponent](b.em, id)
	return a
}

func (b *testBattle) buttonStates() []bool {
	var enabled []bool
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](b.em) {
		btn, _ := ecs.GetComponent[*components.ButtonComponent](b.em, id)
		enabled = append(enabled, btn.Enabled)
	}
	return enabled
}

func allEqual(values []bool, want bool) bool {
	for _, v := range values {
		if v != want {
			return false
		}
	}
	return len(values) > 0
}
