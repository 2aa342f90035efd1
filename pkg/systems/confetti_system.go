package systems

import (
	"image/color"
	"log"
	"math/rand"

	"github.com/google/uuid"

	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/timing"
)

// ConfettiShape 彩纸形状
type ConfettiShape int

const (
	// ConfettiRect 矩形纸片
	ConfettiRect ConfettiShape = iota
	// ConfettiCircle 圆形纸片（直径取宽度）
	ConfettiCircle
)

// ConfettiParticle 单个彩纸粒子
//
// 速度单位为 像素/帧，旋转单位为 角度。
// 一旦开始淡出，Opacity 只减不增；Opacity <= 0 视为死亡，
// 不再参与模拟与渲染，但仍保留在所属批次的切片中。
type ConfettiParticle struct {
	X, Y          float64
	VX, VY        float64
	W, H          float64
	Color         color.RGBA
	Rotation      float64
	RotationSpeed float64
	Opacity       float64
	Shape         ConfettiShape
}

// Alive 粒子是否仍然存活
func (p *ConfettiParticle) Alive() bool {
	return p.Opacity > 0
}

// ConfettiRun 一次 Launch 产生的独立模拟
// 拥有自己的粒子切片和动画循环，后续波次追加到同一切片
type ConfettiRun struct {
	ID        string
	Particles []ConfettiParticle

	// Active 循环是否仍在请求下一帧
	Active bool
	// Frames 已模拟的帧数
	Frames int
	// LastAlive 最近一帧开始时的存活粒子数
	LastAlive int

	fresh bool // Launch 时已模拟首帧，本 tick 的 Update 跳过
}

// ConfettiSystem 彩纸粒子模拟器
//
// 在可调整大小的画布上运行 2D 粒子系统：
//   - Launch 创建一个新的独立批次并立即模拟第一帧
//   - 追加波次在指定延迟后加入同一批次
//   - 批次在某一帧没有存活粒子时自行停止
//
// 多个批次互不协调：每个批次绘制前都会清空共享画布，
// 同时存在时后启动的批次会覆盖先启动的批次的画面（仅视觉影响）。
type ConfettiSystem struct {
	cfg       config.ConfettiConfig
	palette   []color.RGBA
	scheduler *timing.Scheduler
	rng       *rand.Rand

	width  float64
	height float64

	runs []*ConfettiRun
}

// NewConfettiSystem 创建彩纸系统
func NewConfettiSystem(cfg config.ConfettiConfig, palette []color.RGBA, scheduler *timing.Scheduler, rng *rand.Rand, width, height int) *ConfettiSystem {
	if len(palette) == 0 {
		palette = []color.RGBA{{R: 255, G: 255, B: 255, A: 255}}
	}
	return &ConfettiSystem{
		cfg:       cfg,
		palette:   palette,
		scheduler: scheduler,
		rng:       rng,
		width:     float64(width),
		height:    float64(height),
	}
}

// Resize 将画布尺寸同步为视口尺寸
// 进行中的粒子位置不做缩放
func (s *ConfettiSystem) Resize(width, height int) {
	s.width = float64(width)
	s.height = float64(height)
}

// Size 返回画布尺寸
func (s *ConfettiSystem) Size() (float64, float64) {
	return s.width, s.height
}

// Launch 启动一次彩纸效果
//
// 以全画布随机分布生成首批粒子并立即模拟第一帧，
// 然后按配置在延迟后追加波次（默认 1s 后 150 个、2.5s 后 100 个）。
func (s *ConfettiSystem) Launch() *ConfettiRun {
	run := &ConfettiRun{
		ID:        uuid.NewString(),
		Particles: make([]ConfettiParticle, 0, s.cfg.InitialCount),
		Active:    true,
	}
	for i := 0; i < s.cfg.InitialCount; i++ {
		run.Particles = append(run.Particles, s.newBurstParticle())
	}
	s.runs = append(s.runs, run)

	s.step(run)
	run.fresh = true

	for _, wave := range s.cfg.Waves {
		count := wave.Count
		s.scheduler.After(wave.Delay, func() {
			s.launchWave(run, count)
		})
	}

	log.Printf("[Confetti] Launch run %s: %d particles, %d waves, canvas %.0fx%.0f",
		run.ID, s.cfg.InitialCount, len(s.cfg.Waves), s.width, s.height)
	return run
}

// launchWave 从画布顶部追加一波粒子
// 批次已停止时粒子仍会加入切片，但不会再被模拟
func (s *ConfettiSystem) launchWave(run *ConfettiRun, count int) {
	for i := 0; i < count; i++ {
		run.Particles = append(run.Particles, s.newWaveParticle())
	}
	if !run.Active {
		log.Printf("[Confetti] Wave of %d added to stopped run %s", count, run.ID)
		return
	}
	log.Printf("[Confetti] Wave of %d added to run %s (total %d)", count, run.ID, len(run.Particles))
}

// newBurstParticle 首批粒子：全画布随机（y 在画布上方一屏内）
func (s *ConfettiSystem) newBurstParticle() ConfettiParticle {
	r := s.rng
	return ConfettiParticle{
		X:             r.Float64() * s.width,
		Y:             r.Float64()*s.height - s.height,
		W:             6 + r.Float64()*8,
		H:             4 + r.Float64()*6,
		Color:         s.palette[r.Intn(len(s.palette))],
		VX:            (r.Float64() - 0.5) * 4,
		VY:            2 + r.Float64()*4,
		Rotation:      r.Float64() * 360,
		RotationSpeed: (r.Float64() - 0.5) * 10,
		Opacity:       1,
		Shape:         s.randomShape(),
	}
}

// newWaveParticle 追加波次粒子：从顶部边缘落下，速度范围更大
func (s *ConfettiSystem) newWaveParticle() ConfettiParticle {
	r := s.rng
	return ConfettiParticle{
		X:             r.Float64() * s.width,
		Y:             -20,
		W:             6 + r.Float64()*8,
		H:             4 + r.Float64()*6,
		Color:         s.palette[r.Intn(len(s.palette))],
		VX:            (r.Float64() - 0.5) * 6,
		VY:            2 + r.Float64()*5,
		Rotation:      r.Float64() * 360,
		RotationSpeed: (r.Float64() - 0.5) * 12,
		Opacity:       1,
		Shape:         s.randomShape(),
	}
}

func (s *ConfettiSystem) randomShape() ConfettiShape {
	if s.rng.Float64() > 0.5 {
		return ConfettiRect
	}
	return ConfettiCircle
}

// Update 推进所有活动批次一帧
// 物理常量按帧定义，与 deltaTime 无关（游戏循环固定 60 TPS）
func (s *ConfettiSystem) Update(deltaTime float64) {
	// 上一帧已停止的批次在最后一次清屏绘制后移除
	active := s.runs[:0]
	for _, run := range s.runs {
		if run.Active {
			active = append(active, run)
		}
	}
	for i := len(active); i < len(s.runs); i++ {
		s.runs[i] = nil
	}
	s.runs = active

	for _, run := range s.runs {
		if run.fresh {
			run.fresh = false
			continue
		}
		s.step(run)
	}
}

// step 模拟一个批次的一帧
//
// 积分顺序：位置 += 速度；竖直速度 += 重力；旋转 += 旋转速度；
// 水平速度 *= 阻尼；超过画布 fadeStart 高度后透明度递减。
func (s *ConfettiSystem) step(run *ConfettiRun) {
	fadeY := s.height * s.cfg.FadeStart
	alive := 0
	for i := range run.Particles {
		p := &run.Particles[i]
		if !p.Alive() {
			continue
		}
		alive++

		p.X += p.VX
		p.Y += p.VY
		p.VY += s.cfg.Gravity
		p.Rotation += p.RotationSpeed
		p.VX *= s.cfg.Damping

		if p.Y > fadeY {
			p.Opacity -= s.cfg.FadeStep
		}
	}

	run.Frames++
	run.LastAlive = alive
	if alive == 0 {
		run.Active = false
		log.Printf("[Confetti] Run %s finished after %d frames", run.ID, run.Frames)
	}
}

// Draw 按启动顺序渲染每个批次：先清空画布，再绘制该批次的存活粒子
// 没有批次时不触碰画布
func (s *ConfettiSystem) Draw(painter Painter) {
	for _, run := range s.runs {
		painter.Clear()
		for i := range run.Particles {
			p := &run.Particles[i]
			if !p.Alive() {
				continue
			}
			alpha := p.Opacity
			if alpha > 1 {
				alpha = 1
			}
			switch p.Shape {
			case ConfettiRect:
				painter.FillRect(p.X, p.Y, p.W, p.H, p.Rotation, p.Color, alpha)
			case ConfettiCircle:
				painter.FillCircle(p.X, p.Y, p.W/2, p.Color, alpha)
			}
		}
	}
}

// Runs 返回当前仍被绘制的批次
func (s *ConfettiSystem) Runs() []*ConfettiRun {
	return s.runs
}

// IsAnimating 是否有批次仍在请求帧
func (s *ConfettiSystem) IsAnimating() bool {
	for _, run := range s.runs {
		if run.Active {
			return true
		}
	}
	return false
}

// AliveCount 返回所有活动批次中存活的粒子数
func (s *ConfettiSystem) AliveCount() int {
	count := 0
	for _, run := range s.runs {
		if !run.Active {
			continue
		}
		for i := range run.Particles {
			if run.Particles[i].Alive() {
				count++
			}
		}
	}
	return count
}
