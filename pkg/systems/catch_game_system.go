package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/timing"
)

// GamePhase 接爱心小游戏的阶段
type GamePhase int

const (
	GameIdle GamePhase = iota
	GameRunning
	GameWon
)

func (p GamePhase) String() string {
	switch p {
	case GameIdle:
		return "idle"
	case GameRunning:
		return "running"
	case GameWon:
		return "won"
	}
	return "unknown"
}

// GameState 小游戏的显式状态
// 不变量：分数只在 Running 时增加；发射器运行当且仅当 Running 为 true
type GameState struct {
	Score   int
	Running bool
	Phase   GamePhase
}

// CatchGameSystem 接爱心小游戏状态机
//
//	idle/won --Start--> running --score 达到目标--> won --Reset--> idle
//
// 运行时按固定间隔生成下落目标；每个目标在生成时安排自然过期，
// 被接住时另外安排一次短延迟移除，两条路径竞争时移除是幂等的。
type CatchGameSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.CatchGameConfig
	scheduler     *timing.Scheduler
	rng           *rand.Rand

	state   GameState
	emitter *timing.Emitter

	areaWidth  float64
	areaHeight float64

	// scorePop 分数放大动画剩余时间
	scorePop float64
	wins     int

	// OnWin 胜利后延迟调用（打开表白弹窗）
	OnWin func()
}

// NewCatchGameSystem 创建小游戏
func NewCatchGameSystem(em *ecs.EntityManager, cfg config.CatchGameConfig, scheduler *timing.Scheduler, rng *rand.Rand) *CatchGameSystem {
	gs := &CatchGameSystem{
		entityManager: em,
		cfg:           cfg,
		scheduler:     scheduler,
		rng:           rng,
		state:         GameState{Phase: GameIdle},
	}
	gs.emitter = timing.NewEmitter(scheduler, timing.FixedInterval(cfg.SpawnInterval), gs.spawnTarget)
	return gs
}

// SetArea 设置游戏区域尺寸（像素）
func (gs *CatchGameSystem) SetArea(width, height float64) {
	gs.areaWidth = width
	gs.areaHeight = height
}

// Area 返回游戏区域尺寸
func (gs *CatchGameSystem) Area() (float64, float64) {
	return gs.areaWidth, gs.areaHeight
}

// State 返回当前状态的副本
func (gs *CatchGameSystem) State() GameState {
	return gs.state
}

// Start 开始游戏：分数清零，清理残留目标，启动生成
// 只能从 idle 或 won 进入，运行中调用是空操作
func (gs *CatchGameSystem) Start() {
	if gs.state.Phase == GameRunning {
		log.Printf("[CatchGame] Start ignored: already running")
		return
	}
	gs.clearTargets()
	gs.state = GameState{Score: 0, Running: true, Phase: GameRunning}
	gs.scorePop = 0
	gs.emitter.Start()
	log.Printf("[CatchGame] Started (target score %d, area %.0fx%.0f)", gs.cfg.TargetScore, gs.areaWidth, gs.areaHeight)
}

// Reset 回到 idle：停止生成并清理所有目标
func (gs *CatchGameSystem) Reset() {
	gs.emitter.Stop()
	gs.clearTargets()
	gs.state = GameState{Phase: GameIdle}
	gs.scorePop = 0
	log.Printf("[CatchGame] Reset to idle")
}

// spawnTarget 生成一个下落目标并安排其自然过期
func (gs *CatchGameSystem) spawnTarget() {
	size := gs.cfg.TargetSize
	maxX := gs.areaWidth - size
	x := 0.0
	if maxX > 0 {
		x = gs.rng.Float64() * maxX
	}
	fall := gs.cfg.MinFall + gs.rng.Float64()*(gs.cfg.MaxFall-gs.cfg.MinFall)

	glyph := "♥"
	if len(gs.cfg.Glyphs) > 0 {
		glyph = gs.cfg.Glyphs[gs.rng.Intn(len(gs.cfg.Glyphs))]
	}

	id := gs.entityManager.CreateEntity()
	ecs.AddComponent(gs.entityManager, id, &components.GameTargetComponent{
		Glyph:        glyph,
		X:            x,
		Size:         size,
		FallDuration: fall,
	})

	gs.scheduler.After(fall+gs.cfg.ExpiryGrace, func() {
		gs.removeTarget(id)
	})
}

// Catch 接住目标
// 只在运行中、目标仍存在且尚未被接住时有效，返回是否计分
func (gs *CatchGameSystem) Catch(id ecs.EntityID) bool {
	if !gs.state.Running {
		return false
	}
	target, ok := ecs.GetComponent[*components.GameTargetComponent](gs.entityManager, id)
	if !ok || !gs.entityManager.IsAlive(id) || target.Caught {
		return false
	}

	target.Caught = true
	gs.state.Score++
	gs.scorePop = gs.cfg.ScorePopLength
	log.Printf("[CatchGame] Caught target %d, score %d/%d", id, gs.state.Score, gs.cfg.TargetScore)

	gs.scheduler.After(gs.cfg.CatchRemoval, func() {
		gs.removeTarget(id)
	})

	if gs.state.Score >= gs.cfg.TargetScore {
		gs.win()
	}
	return true
}

// win 进入胜利状态：停止生成，立即清理所有目标，延迟调用 OnWin
func (gs *CatchGameSystem) win() {
	gs.state.Running = false
	gs.state.Phase = GameWon
	gs.emitter.Stop()
	gs.clearTargets()
	gs.wins++
	log.Printf("[CatchGame] Won with score %d", gs.state.Score)

	gs.scheduler.After(gs.cfg.WinModalDelay, func() {
		if gs.OnWin != nil {
			gs.OnWin()
		}
	})
}

// removeTarget 移除目标，已移除时是空操作
func (gs *CatchGameSystem) removeTarget(id ecs.EntityID) {
	if !gs.entityManager.IsAlive(id) {
		return
	}
	if !ecs.HasComponent[*components.GameTargetComponent](gs.entityManager, id) {
		return
	}
	gs.entityManager.DestroyEntity(id)
}

func (gs *CatchGameSystem) clearTargets() {
	for _, id := range gs.Targets() {
		gs.entityManager.DestroyEntity(id)
	}
}

// Targets 返回当前仍在场上的目标
func (gs *CatchGameSystem) Targets() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.GameTargetComponent](gs.entityManager)
}

// Update 推进目标下落与分数动画
func (gs *CatchGameSystem) Update(deltaTime float64) {
	for _, id := range gs.Targets() {
		target, ok := ecs.GetComponent[*components.GameTargetComponent](gs.entityManager, id)
		if !ok {
			continue
		}
		if target.Caught {
			target.CaughtAge += deltaTime
			continue
		}
		target.Age += deltaTime
	}

	if gs.scorePop > 0 {
		gs.scorePop -= deltaTime
		if gs.scorePop < 0 {
			gs.scorePop = 0
		}
	}
}

// TargetY 返回目标在游戏区域内的纵向位置
// 从区域上方一个目标高度处开始，落到区域底部之下
func (gs *CatchGameSystem) TargetY(target *components.GameTargetComponent) float64 {
	if target.FallDuration <= 0 {
		return gs.areaHeight
	}
	progress := target.Age / target.FallDuration
	if progress > 1 {
		progress = 1
	}
	return -target.Size + (gs.areaHeight+target.Size)*progress
}

// HitTest 返回区域坐标 (x, y) 处最上层的未被接住目标
func (gs *CatchGameSystem) HitTest(x, y float64) (ecs.EntityID, bool) {
	targets := gs.Targets()
	for i := len(targets) - 1; i >= 0; i-- {
		id := targets[i]
		target, ok := ecs.GetComponent[*components.GameTargetComponent](gs.entityManager, id)
		if !ok || target.Caught {
			continue
		}
		ty := gs.TargetY(target)
		if x >= target.X && x < target.X+target.Size && y >= ty && y < ty+target.Size {
			return id, true
		}
	}
	return 0, false
}

// ScorePopScale 分数标签当前缩放比例（1.0 ~ 1.3）
func (gs *CatchGameSystem) ScorePopScale() float64 {
	if gs.cfg.ScorePopLength <= 0 || gs.scorePop <= 0 {
		return 1
	}
	return 1 + 0.3*(gs.scorePop/gs.cfg.ScorePopLength)
}

// SpawnerRunning 生成器是否在运行
func (gs *CatchGameSystem) SpawnerRunning() bool {
	return gs.emitter.Running()
}

// Wins 返回累计胜利次数
func (gs *CatchGameSystem) Wins() int {
	return gs.wins
}
