package timing

import "math/rand"

// IntervalFunc 返回下一次触发前的等待时间（秒）
type IntervalFunc func() float64

// FixedInterval 返回固定间隔
func FixedInterval(seconds float64) IntervalFunc {
	return func() float64 { return seconds }
}

// RandomInterval 返回在 [min, max) 内均匀分布的随机间隔
func RandomInterval(rng *rand.Rand, min, max float64) IntervalFunc {
	return func() float64 {
		return min + rng.Float64()*(max-min)
	}
}

// Emitter 自调度的重复任务
//
// 每次调用 spawn 之后才安排下一次调用，因此调用之间不会重叠，
// 误差会随时间累积（与固定频率时钟不同）。
// Stop 只取消下一次调用；已经生成的对象按各自的生命周期自然过期。
type Emitter struct {
	scheduler *Scheduler
	interval  IntervalFunc
	spawn     func()

	running bool
	pending TimerID
	fired   int
}

// NewEmitter 创建重复任务（未启动）
func NewEmitter(scheduler *Scheduler, interval IntervalFunc, spawn func()) *Emitter {
	return &Emitter{
		scheduler: scheduler,
		interval:  interval,
		spawn:     spawn,
	}
}

// Start 启动任务，第一次调用在一个间隔之后
// 已经在运行时调用是空操作
func (e *Emitter) Start() {
	if e.running {
		return
	}
	e.running = true
	e.schedule()
}

// StartNow 启动任务并立即调用一次 spawn
func (e *Emitter) StartNow() {
	if e.running {
		return
	}
	e.running = true
	e.tick()
}

// Stop 取消后续调用
func (e *Emitter) Stop() {
	if !e.running {
		return
	}
	e.running = false
	e.scheduler.Cancel(e.pending)
	e.pending = 0
}

// Running 返回任务是否在运行
func (e *Emitter) Running() bool {
	return e.running
}

// Fired 返回 spawn 被调用的累计次数
func (e *Emitter) Fired() int {
	return e.fired
}

func (e *Emitter) schedule() {
	e.pending = e.scheduler.After(e.interval(), e.tick)
}

func (e *Emitter) tick() {
	if !e.running {
		return
	}
	e.fired++
	e.spawn()
	// spawn 内部可能调用了 Stop
	if e.running {
		e.schedule()
	}
}
