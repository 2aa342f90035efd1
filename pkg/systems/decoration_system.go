package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/timing"
)

// DecorationSystem 生成漂浮爱心和闪光
//
// 两种装饰都由自调度的 Emitter 生成，生成时写入寿命，
// 到期由 LifetimeSystem 移除；停止发射器不影响已生成的装饰。
type DecorationSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *timing.Scheduler
	rng           *rand.Rand

	hearts   config.HeartsConfig
	sparkles config.SparklesConfig

	heartEmitter   *timing.Emitter
	sparkleEmitter *timing.Emitter
	sparklesArmed  bool
}

// NewDecorationSystem 创建装饰系统
func NewDecorationSystem(em *ecs.EntityManager, scheduler *timing.Scheduler, rng *rand.Rand, hearts config.HeartsConfig, sparkles config.SparklesConfig) *DecorationSystem {
	ds := &DecorationSystem{
		entityManager: em,
		scheduler:     scheduler,
		rng:           rng,
		hearts:        hearts,
		sparkles:      sparkles,
	}
	ds.heartEmitter = timing.NewEmitter(scheduler,
		timing.RandomInterval(rng, hearts.MinInterval, hearts.MaxInterval), ds.spawnHeart)
	ds.sparkleEmitter = timing.NewEmitter(scheduler,
		timing.FixedInterval(sparkles.Interval), ds.spawnSparkle)
	return ds
}

// StartHearts 开始生成漂浮爱心：首批错开生成，同时启动持续发射
func (ds *DecorationSystem) StartHearts() {
	if ds.heartEmitter.Running() {
		return
	}
	for i := 0; i < ds.hearts.InitialBurst; i++ {
		ds.scheduler.After(float64(i)*ds.hearts.BurstStagger, ds.spawnHeart)
	}
	ds.heartEmitter.StartNow()
	log.Printf("[DecorationSystem] Floating hearts started (burst %d)", ds.hearts.InitialBurst)
}

// StopHearts 停止持续生成爱心
func (ds *DecorationSystem) StopHearts() {
	ds.heartEmitter.Stop()
}

// StartSparkles 开始在结尾区域生成闪光，持续一段时间后自动停止
// 只会生效一次
func (ds *DecorationSystem) StartSparkles() {
	if ds.sparklesArmed {
		return
	}
	ds.sparklesArmed = true
	ds.sparkleEmitter.Start()
	ds.scheduler.After(ds.sparkles.RunFor, ds.sparkleEmitter.Stop)
	log.Printf("[DecorationSystem] Sparkles started for %.0fs", ds.sparkles.RunFor)
}

// SparklesRunning 闪光发射器是否运行中
func (ds *DecorationSystem) SparklesRunning() bool {
	return ds.sparkleEmitter.Running()
}

// HeartsRunning 爱心发射器是否运行中
func (ds *DecorationSystem) HeartsRunning() bool {
	return ds.heartEmitter.Running()
}

func (ds *DecorationSystem) spawnHeart() {
	h := ds.hearts
	glyph := "♥"
	if len(h.Glyphs) > 0 {
		glyph = h.Glyphs[ds.rng.Intn(len(h.Glyphs))]
	}
	deco := &components.DecorationComponent{
		Kind:     components.DecorationFloatingHeart,
		Glyph:    glyph,
		Section:  config.SectionLanding,
		XPercent: ds.rng.Float64() * 100,
		YPercent: 100,
		Duration: h.MinDuration + ds.rng.Float64()*(h.MaxDuration-h.MinDuration),
		Delay:    ds.rng.Float64() * h.MaxDelay,
		Size:     h.MinSize + ds.rng.Float64()*(h.MaxSize-h.MinSize),
	}
	ds.spawn(deco, deco.Duration+deco.Delay+h.RemoveGrace)
}

func (ds *DecorationSystem) spawnSparkle() {
	s := ds.sparkles
	deco := &components.DecorationComponent{
		Kind:     components.DecorationSparkle,
		Glyph:    s.Glyph,
		Section:  config.SectionFinal,
		XPercent: ds.rng.Float64() * 100,
		YPercent: ds.rng.Float64() * 100,
		Size:     s.MinSize + ds.rng.Float64()*(s.MaxSize-s.MinSize),
		Duration: s.MinDuration + ds.rng.Float64()*(s.MaxDuration-s.MinDuration),
	}
	ds.spawn(deco, s.Lifetime)
}

func (ds *DecorationSystem) spawn(deco *components.DecorationComponent, lifetime float64) {
	id := ds.entityManager.CreateEntity()
	ecs.AddComponent(ds.entityManager, id, deco)
	ecs.AddComponent(ds.entityManager, id, &components.LifetimeComponent{MaxLifetime: lifetime})
}

// Decorations 返回指定类型的装饰实体
func (ds *DecorationSystem) Decorations(kind components.DecorationKind) []ecs.EntityID {
	var result []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith2[*components.DecorationComponent, *components.LifetimeComponent](ds.entityManager) {
		deco, _ := ecs.GetComponent[*components.DecorationComponent](ds.entityManager, id)
		if deco.Kind == kind {
			result = append(result, id)
		}
	}
	return result
}

// DecorationPose 装饰在某一时刻的外观
type DecorationPose struct {
	// YPercent 纵向位置（相对所属区块）
	YPercent float64
	Alpha    float64
	Scale    float64
	Rotation float64 // 角度
}

// FloatingHeartPose 漂浮爱心：自区块底部上升到顶部之外，淡入后淡出
func FloatingHeartPose(d *components.DecorationComponent, age float64) DecorationPose {
	p := d.Progress(age)
	if p < 0 {
		return DecorationPose{YPercent: 100, Alpha: 0, Scale: 1}
	}
	alpha := 0.7
	switch {
	case p < 0.1:
		alpha = 0.7 * p / 0.1
	case p > 0.9:
		alpha = 0.7 * (1 - p) / 0.1
	}
	return DecorationPose{
		YPercent: 100 - 110*p,
		Alpha:    math.Max(0, alpha),
		Scale:    1,
		Rotation: 360 * p,
	}
}

// SparklePose 闪光：缩放 0→1→0.5，旋转 0→360°，透明度 0→1→0
// 动画结束后保持不可见直到被移除
func SparklePose(d *components.DecorationComponent, age float64) DecorationPose {
	p := d.Progress(age)
	if p < 0 {
		p = 0
	}
	pose := DecorationPose{YPercent: d.YPercent, Rotation: 360 * p}
	if p <= 0.5 {
		k := p / 0.5
		pose.Scale = k
		pose.Alpha = k
	} else {
		k := (p - 0.5) / 0.5
		pose.Scale = 1 - 0.5*k
		pose.Alpha = 1 - k
	}
	return pose
}
