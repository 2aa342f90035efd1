package systems

import (
	"testing"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/timing"
)

func newTestCatchGame() (*CatchGameSystem, *ecs.EntityManager, *timing.Scheduler) {
	em := ecs.NewEntityManager()
	scheduler := timing.NewScheduler()
	cfg := config.DefaultGreetingConfig().Game
	gs := NewCatchGameSystem(em, cfg, scheduler, newTestRand())
	gs.SetArea(600, 400)
	return gs, em, scheduler
}

// tick 同时推进调度器和游戏（模拟一帧）
func tick(gs *CatchGameSystem, em *ecs.EntityManager, scheduler *timing.Scheduler, dt float64) {
	scheduler.Advance(dt)
	gs.Update(dt)
	em.RemoveMarkedEntities()
}

// spawnN 推进到至少生成 n 个目标
func spawnN(t *testing.T, gs *CatchGameSystem, em *ecs.EntityManager, scheduler *timing.Scheduler, n int) []ecs.EntityID {
	t.Helper()
	for i := 0; i < 600 && len(gs.Targets()) < n; i++ {
		tick(gs, em, scheduler, 1.0/60)
	}
	targets := gs.Targets()
	if len(targets) < n {
		t.Fatalf("Expected at least %d targets, got %d", n, len(targets))
	}
	return targets
}

// TestCatchGameStartResetsState 测试开始游戏时分数清零并进入运行状态
func TestCatchGameStartResetsState(t *testing.T) {
	gs, _, _ := newTestCatchGame()
	gs.state.Score = 7
	gs.state.Phase = GameWon

	gs.Start()

	state := gs.State()
	if state.Score != 0 || !state.Running || state.Phase != GameRunning {
		t.Errorf("Unexpected state after start: %+v", state)
	}
	if !gs.SpawnerRunning() {
		t.Error("Spawner should run iff the game is running")
	}
}

// TestCatchGameSpawnsWithinArea 测试目标位置和下落时间范围
func TestCatchGameSpawnsWithinArea(t *testing.T) {
	gs, em, scheduler := newTestCatchGame()
	gs.Start()

	// 0.6s 间隔，首个目标在 0.6s 时出现
	scheduler.Advance(0.59)
	if len(gs.Targets()) != 0 {
		t.Fatal("No target should spawn before the first interval")
	}
	scheduler.Advance(0.02)
	if len(gs.Targets()) != 1 {
		t.Fatalf("Expected 1 target, got %d", len(gs.Targets()))
	}

	targets := spawnN(t, gs, em, scheduler, 3)
	for _, id := range targets {
		target, _ := ecs.GetComponent[*components.GameTargetComponent](em, id)
		if target.X < 0 || target.X >= 600-target.Size {
			t.Errorf("Target x out of range: %f", target.X)
		}
		if target.FallDuration < 2 || target.FallDuration >= 4 {
			t.Errorf("Fall duration out of range: %f", target.FallDuration)
		}
	}
}

// TestCatchGameCatchWhenNotRunning 测试未运行时接住无效
func TestCatchGameCatchWhenNotRunning(t *testing.T) {
	gs, em, _ := newTestCatchGame()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.GameTargetComponent{Size: 40, FallDuration: 3})

	if gs.Catch(id) {
		t.Error("Catch should be a no-op while idle")
	}
	if gs.State().Score != 0 {
		t.Errorf("Score must not change, got %d", gs.State().Score)
	}
}

// TestCatchGameDoubleCatchCountsOnce 测试重复接住同一目标只计一次分
func TestCatchGameDoubleCatchCountsOnce(t *testing.T) {
	gs, em, scheduler := newTestCatchGame()
	gs.Start()
	id := spawnN(t, gs, em, scheduler, 1)[0]

	if !gs.Catch(id) {
		t.Fatal("First catch should score")
	}
	if gs.Catch(id) {
		t.Error("Second catch of the same target should be ignored")
	}
	if gs.State().Score != 1 {
		t.Errorf("Expected score 1, got %d", gs.State().Score)
	}

	// 400ms 后移除
	tick(gs, em, scheduler, 0.41)
	if em.IsAlive(id) {
		t.Error("Caught target should be removed after the removal delay")
	}
}

// TestCatchGameExpiryAndCatchRace 测试自然过期与接住移除竞争时安全
func TestCatchGameExpiryAndCatchRace(t *testing.T) {
	gs, em, scheduler := newTestCatchGame()
	gs.Start()
	id := spawnN(t, gs, em, scheduler, 1)[0]
	target, _ := ecs.GetComponent[*components.GameTargetComponent](em, id)

	// 推进到自然过期前一刻再接住，两个移除定时器都会触发
	remaining := target.FallDuration + 0.1 - target.Age - 0.05
	for remaining > 0 {
		tick(gs, em, scheduler, 0.01)
		remaining -= 0.01
	}
	if !em.IsAlive(id) {
		t.Skip("Target expired before it could be caught")
	}
	gs.Catch(id)
	tick(gs, em, scheduler, 0.5)

	if em.IsAlive(id) {
		t.Error("Target should be removed")
	}
	if gs.State().Score != 1 {
		t.Errorf("Expected score 1, got %d", gs.State().Score)
	}
}

// TestCatchGameUncaughtTargetsExpire 测试未接住的目标自然移除且不影响分数
func TestCatchGameUncaughtTargetsExpire(t *testing.T) {
	gs, em, scheduler := newTestCatchGame()
	gs.Start()
	id := spawnN(t, gs, em, scheduler, 1)[0]

	for i := 0; i < 5*60; i++ {
		tick(gs, em, scheduler, 1.0/60)
	}
	if em.IsAlive(id) {
		t.Error("Uncaught target should expire after its fall")
	}
	if gs.State().Score != 0 {
		t.Errorf("Expired targets must not score, got %d", gs.State().Score)
	}
}

// TestCatchGameWinFiresOnce 测试分数达到 9 后再接一次只触发一次胜利
func TestCatchGameWinFiresOnce(t *testing.T) {
	gs, em, scheduler := newTestCatchGame()
	wins := 0
	gs.OnWin = func() { wins++ }
	gs.Start()

	caught := 0
	for i := 0; i < 6000 && caught < 9; i++ {
		tick(gs, em, scheduler, 1.0/60)
		for _, id := range gs.Targets() {
			if caught < 9 && gs.Catch(id) {
				caught++
			}
		}
	}
	if gs.State().Score != 9 {
		t.Fatalf("Expected score 9, got %d", gs.State().Score)
	}

	targets := spawnN(t, gs, em, scheduler, 1)
	// 确保有两个可接的目标，模拟几乎同时的两次点击
	for len(targets) < 2 {
		tick(gs, em, scheduler, 1.0/60)
		targets = gs.Targets()
	}
	var live []ecs.EntityID
	for _, id := range targets {
		if target, _ := ecs.GetComponent[*components.GameTargetComponent](em, id); !target.Caught {
			live = append(live, id)
		}
	}
	for len(live) < 2 {
		tick(gs, em, scheduler, 1.0/60)
		live = live[:0]
		for _, id := range gs.Targets() {
			if target, _ := ecs.GetComponent[*components.GameTargetComponent](em, id); !target.Caught {
				live = append(live, id)
			}
		}
	}

	if !gs.Catch(live[0]) {
		t.Fatal("Tenth catch should score")
	}
	if gs.Catch(live[1]) {
		t.Error("Catch after winning must be ignored")
	}

	state := gs.State()
	if state.Running || state.Phase != GameWon || state.Score != 10 {
		t.Errorf("Unexpected state after win: %+v", state)
	}
	if gs.SpawnerRunning() {
		t.Error("Spawner must stop on win")
	}
	if len(gs.Targets()) != 0 {
		t.Errorf("All targets should be cleared on win, %d left", len(gs.Targets()))
	}

	if wins != 0 {
		t.Error("OnWin should be delayed")
	}
	for i := 0; i < 120; i++ {
		tick(gs, em, scheduler, 1.0/60)
	}
	if wins != 1 {
		t.Errorf("OnWin should fire exactly once, got %d", wins)
	}
	if len(gs.Targets()) != 0 {
		t.Error("No targets should spawn after winning")
	}
}

// TestCatchGameRestartAfterWin 测试胜利后可以重新开始
func TestCatchGameRestartAfterWin(t *testing.T) {
	gs, em, scheduler := newTestCatchGame()
	gs.cfg.TargetScore = 1
	gs.Start()
	id := spawnN(t, gs, em, scheduler, 1)[0]
	gs.Catch(id)
	if gs.State().Phase != GameWon {
		t.Fatal("Expected won")
	}

	gs.Start()
	if gs.State().Phase != GameRunning || gs.State().Score != 0 {
		t.Errorf("Expected a fresh running game, got %+v", gs.State())
	}

	gs.Reset()
	if gs.State().Phase != GameIdle || gs.SpawnerRunning() {
		t.Errorf("Reset should return to idle, got %+v", gs.State())
	}
}

// TestCatchGameHitTest 测试点击命中
func TestCatchGameHitTest(t *testing.T) {
	gs, em, _ := newTestCatchGame()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.GameTargetComponent{X: 100, Size: 40, FallDuration: 2, Age: 1})

	// 进度 0.5: y = -40 + 440*0.5 = 180
	if got, ok := gs.HitTest(110, 190); !ok || got != id {
		t.Errorf("Expected hit on target %d", id)
	}
	if _, ok := gs.HitTest(10, 10); ok {
		t.Error("Expected miss")
	}
}

// TestCatchGameScorePop 测试分数放大动画
func TestCatchGameScorePop(t *testing.T) {
	gs, em, scheduler := newTestCatchGame()
	gs.Start()
	id := spawnN(t, gs, em, scheduler, 1)[0]
	gs.Catch(id)
	if gs.ScorePopScale() <= 1 {
		t.Error("Score label should pop after a catch")
	}
	gs.Update(0.3)
	if gs.ScorePopScale() != 1 {
		t.Errorf("Pop should settle after its duration, got %f", gs.ScorePopScale())
	}
}
