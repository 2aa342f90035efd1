package systems

import (
	"log"

	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/timing"
)

// TypewriterSystem 逐字显示文案
//
// 每追加一个字符，根据该字符安排下一次追加的延迟：
// 换行 / 句号 / 逗号 分别停顿更久，其余字符使用普通速度。
// 全部打完后再等待一段时间，隐藏光标并调用 OnFinished。
// 整个生命周期只运行一次，重复 Start 是空操作。
type TypewriterSystem struct {
	cfg       config.TypewriterConfig
	scheduler *timing.Scheduler

	script []rune
	index  int
	output []rune

	started       bool
	finished      bool
	cursorVisible bool
	pending       timing.TimerID

	// OnFinished 文案打完并隐藏光标后调用（显示"继续"按钮）
	OnFinished func()
}

// NewTypewriterSystem 创建打字机
func NewTypewriterSystem(cfg config.TypewriterConfig, script string, scheduler *timing.Scheduler) *TypewriterSystem {
	return &TypewriterSystem{
		cfg:           cfg,
		scheduler:     scheduler,
		script:        []rune(script),
		cursorVisible: true,
	}
}

// Start 开始打字（仅第一次调用有效）
func (ts *TypewriterSystem) Start() {
	if ts.started {
		log.Printf("[Typewriter] Already started, ignoring re-trigger")
		return
	}
	ts.started = true
	log.Printf("[Typewriter] Starting, %d characters", len(ts.script))
	ts.pending = ts.scheduler.After(ts.cfg.StartDelay, ts.advance)
}

// advance 追加下一个字符并安排后续
func (ts *TypewriterSystem) advance() {
	if ts.index >= len(ts.script) {
		ts.pending = ts.scheduler.After(ts.cfg.SettleDelay, ts.finish)
		return
	}

	ch := ts.script[ts.index]
	ts.output = append(ts.output, ch)
	ts.index++

	if ts.index >= len(ts.script) {
		ts.pending = ts.scheduler.After(ts.cfg.SettleDelay, ts.finish)
		return
	}
	ts.pending = ts.scheduler.After(ts.delayAfter(ch), ts.advance)
}

// delayAfter 返回追加字符 ch 之后的等待时间
func (ts *TypewriterSystem) delayAfter(ch rune) float64 {
	switch ch {
	case '\n':
		return ts.cfg.NewlineDelay
	case '.':
		return ts.cfg.PeriodDelay
	case ',':
		return ts.cfg.CommaDelay
	default:
		return ts.cfg.CharDelay
	}
}

func (ts *TypewriterSystem) finish() {
	ts.pending = 0
	ts.finished = true
	ts.cursorVisible = false
	log.Printf("[Typewriter] Finished")
	if ts.OnFinished != nil {
		ts.OnFinished()
	}
}

// Output 返回已显示的文本
func (ts *TypewriterSystem) Output() string {
	return string(ts.output)
}

// Started 是否已开始
func (ts *TypewriterSystem) Started() bool {
	return ts.started
}

// Finished 是否已完成（光标已隐藏）
func (ts *TypewriterSystem) Finished() bool {
	return ts.finished
}

// CursorVisible 光标是否可见
func (ts *TypewriterSystem) CursorVisible() bool {
	return ts.cursorVisible
}

// Progress 返回已显示字符比例 [0, 1]
func (ts *TypewriterSystem) Progress() float64 {
	if len(ts.script) == 0 {
		return 1
	}
	return float64(ts.index) / float64(len(ts.script))
}
