package scenes

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/game"
	"github.com/gonewx/valentine/pkg/systems"
	"github.com/gonewx/valentine/pkg/timing"
	"github.com/gonewx/valentine/pkg/utils"
)

// GreetingOptions 场景启动参数
type GreetingOptions struct {
	// StartSection 启动时直接跳到的分区（--section）
	StartSection int
	// Width/Height 初始视口尺寸，0 时使用默认窗口尺寸
	Width, Height int
	// Seed 随机种子，0 时使用当前时间
	Seed int64
}

// GreetingScene 贺卡页面场景
//
// 五个分区纵向堆叠成一个可滚动的"文档"：
// 首页（漂浮爱心）→ 留言（打字机）→ 理由（渐显卡片）→ 接爱心小游戏 → 结尾表白。
// 所有定时行为都走虚拟时间调度器，每帧推进一次。
type GreetingScene struct {
	cfg       *config.GreetingConfig
	resources systems.UIResources
	audio     *game.AudioManager
	opener    utils.URLOpener

	layout PageLayout

	// ECS Framework and Systems
	entityManager *ecs.EntityManager
	scheduler     *timing.Scheduler
	rng           *rand.Rand

	scrollSystem     *systems.ScrollSystem
	visibilitySystem *systems.VisibilitySystem
	buttonSystem     *systems.ButtonSystem
	dodgeSystem      *systems.DodgeSystem
	typewriter       *systems.TypewriterSystem
	catchGame        *systems.CatchGameSystem
	decorations      *systems.DecorationSystem
	revealSystem     *systems.RevealSystem
	confetti         *systems.ConfettiSystem
	lifetimeSystem   *systems.LifetimeSystem

	// Render Systems
	buttonRender     *systems.ButtonRenderSystem
	decorationRender *systems.DecorationRenderSystem
	catchGameRender  *systems.CatchGameRenderSystem

	confettiCanvas  *ebiten.Image
	confettiPainter *systems.ImagePainter

	// 按钮实体
	buttonEntities map[components.ButtonID]ecs.EntityID

	// 弹窗状态实体（ModalComponent）
	modalEntity ecs.EntityID

	// currentSection 导航使用的当前分区索引
	currentSection int

	// 庆祝面板
	celebrationVisible bool
	celebrationFade    float64

	// readInput 每帧输入来源（测试中替换）
	readInput func() utils.InputFrame
}

// NewGreetingScene creates the greeting page scene.
//
// Parameters:
//   - cfg: validated greeting configuration
//   - resources: fonts and sprites, may be nil (text and sprites are then skipped)
//   - audio: background music manager, may be nil
//   - opener: opens the messaging deep link, may be nil (link is only logged)
//   - opts: start section, initial size and random seed
func NewGreetingScene(cfg *config.GreetingConfig, resources systems.UIResources, audio *game.AudioManager, opener utils.URLOpener, opts GreetingOptions) *GreetingScene {
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = config.GameWindowWidth, config.GameWindowHeight
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &GreetingScene{
		cfg:            cfg,
		resources:      resources,
		audio:          audio,
		opener:         opener,
		layout:         PageLayout{Width: float64(width), Height: float64(height)},
		entityManager:  ecs.NewEntityManager(),
		scheduler:      timing.NewScheduler(),
		rng:            rand.New(rand.NewSource(seed)),
		buttonEntities: make(map[components.ButtonID]ecs.EntityID),
		readInput:      utils.ReadInput,
	}

	s.initSystems(width, height)
	s.initButtons()
	s.initObservers()
	s.initRenderSystems()

	if opts.StartSection > 0 {
		if s.scrollSystem.JumpToSection(opts.StartSection) {
			s.currentSection = opts.StartSection
			log.Printf("[GreetingScene] Starting at section %d", opts.StartSection)
		} else {
			log.Printf("[GreetingScene] Warning: start section %d out of range, using 0", opts.StartSection)
		}
	}

	// 首页漂浮爱心从启动开始一直运行
	s.decorations.StartHearts()
	s.layoutButtons()

	log.Printf("[GreetingScene] Initialized (%dx%d, seed %d)", width, height, seed)
	return s
}

// Update 推进一帧：输入 → 定时器 → 滚动 → 布局 → 可见性 → 各系统
func (s *GreetingScene) Update(deltaTime float64) {
	if s.readInput != nil {
		s.handleInput(s.readInput())
	}

	s.scheduler.Advance(deltaTime)
	s.scrollSystem.Update(deltaTime)

	s.layoutButtons()
	s.visibilitySystem.Update(s.scrollSystem.Viewport())

	s.buttonSystem.Update(deltaTime)
	s.dodgeSystem.Update(deltaTime)
	s.catchGame.Update(deltaTime)
	s.revealSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	s.confetti.Update(deltaTime)
	s.updateModal(deltaTime)

	if s.celebrationVisible && s.celebrationFade < 1 {
		s.celebrationFade = utils.Clamp01(s.celebrationFade + deltaTime*2)
	}

	s.entityManager.RemoveMarkedEntities()
}

// Draw 渲染页面：分区背景与内容 → 文档层按钮 → 弹窗 → 悬浮按钮 → 彩纸
func (s *GreetingScene) Draw(screen *ebiten.Image) {
	s.drawSections(screen)
	s.decorationRender.Draw(screen, components.DecorationFloatingHeart)
	s.drawSectionContent(screen)
	s.catchGameRender.Draw(screen)
	s.decorationRender.Draw(screen, components.DecorationSparkle)
	s.buttonRender.Draw(screen, components.LayerDocument)

	s.drawModal(screen)
	s.buttonRender.Draw(screen, components.LayerOverlay)

	s.drawConfetti(screen)
}

// Resize 同步视口尺寸：滚动、布局、小游戏区域与彩纸画布
func (s *GreetingScene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.layout = PageLayout{Width: float64(width), Height: float64(height)}
	s.scrollSystem.Resize(float64(width), float64(height))
	area := s.layout.GameArea()
	s.catchGame.SetArea(area.W, area.H)
	s.confetti.Resize(width, height)
	s.layoutButtons()
	log.Printf("[GreetingScene] Resized to %dx%d", width, height)
}

// OnExit 退出前停止音乐并清理定时器
func (s *GreetingScene) OnExit() bool {
	if s.audio != nil {
		s.audio.Stop()
	}
	s.scheduler.Clear()
	log.Printf("[GreetingScene] Exit")
	return true
}

// drawConfetti 在离屏画布上模拟渲染，再叠加到屏幕
func (s *GreetingScene) drawConfetti(screen *ebiten.Image) {
	if len(s.confetti.Runs()) == 0 && s.confettiCanvas == nil {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if s.confettiCanvas == nil || s.confettiCanvas.Bounds().Dx() != w || s.confettiCanvas.Bounds().Dy() != h {
		if s.confettiCanvas != nil {
			s.confettiCanvas.Deallocate()
		}
		s.confettiCanvas = ebiten.NewImage(w, h)
		s.confettiPainter = systems.NewImagePainter(s.confettiCanvas)
	}
	s.confetti.Draw(s.confettiPainter)
	screen.DrawImage(s.confettiCanvas, nil)
}
