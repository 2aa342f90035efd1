package scenes

import (
	"errors"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/game"
	"github.com/gonewx/valentine/pkg/systems"
	"github.com/gonewx/valentine/pkg/utils"
)

const frame = 1.0 / 60

// fakeOpener 记录打开的链接
type fakeOpener struct {
	links []string
	err   error
}

func (f *fakeOpener) Open(link string) error {
	f.links = append(f.links, link)
	return f.err
}

// fakeTrack 假音轨
type fakeTrack struct {
	playing bool
	volume  float64
}

func (f *fakeTrack) Play()                    { f.playing = true }
func (f *fakeTrack) Pause()                   { f.playing = false }
func (f *fakeTrack) IsPlaying() bool          { return f.playing }
func (f *fakeTrack) SetVolume(volume float64) { f.volume = volume }

// sceneFixture 测试用场景及其假依赖
type sceneFixture struct {
	scene  *GreetingScene
	track  *fakeTrack
	opener *fakeOpener
	inputs []utils.InputFrame
}

// newTestScene 创建使用假音轨、假链接打开器的场景
// failAudio 为 true 时音轨加载失败
func newTestScene(t *testing.T, opts GreetingOptions, failAudio bool) *sceneFixture {
	t.Helper()
	f := &sceneFixture{track: &fakeTrack{}, opener: &fakeOpener{}}
	loader := func(path string) (game.MusicTrack, error) {
		if failAudio {
			return nil, errors.New("audio unavailable")
		}
		return f.track, nil
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	audio := game.NewAudioManager(loader, nil, "assets/audio/love_theme.ogg")
	f.scene = NewGreetingScene(config.DefaultGreetingConfig(), nil, audio, f.opener, opts)

	// 依次消费排队的输入，之后返回空输入
	f.scene.readInput = func() utils.InputFrame {
		if len(f.inputs) == 0 {
			return utils.InputFrame{}
		}
		next := f.inputs[0]
		f.inputs = f.inputs[1:]
		return next
	}
	return f
}

// advance 以固定帧长推进场景
func (f *sceneFixture) advance(seconds float64) {
	frames := int(math.Round(seconds / frame))
	for i := 0; i < frames; i++ {
		f.scene.Update(frame)
	}
}

func (f *sceneFixture) click(t *testing.T, id components.ButtonID) bool {
	t.Helper()
	entity, ok := f.scene.buttonEntities[id]
	if !ok {
		t.Fatalf("Button %s not found", id)
	}
	return f.scene.buttonSystem.Click(entity)
}

// winGame 开始小游戏并接住目标直到胜利
func (f *sceneFixture) winGame(t *testing.T) {
	t.Helper()
	f.click(t, components.ButtonStartGame)
	for i := 0; i < 60*60 && f.scene.catchGame.State().Phase != systems.GameWon; i++ {
		for _, id := range f.scene.catchGame.Targets() {
			f.scene.catchGame.Catch(id)
		}
		f.scene.Update(frame)
	}
	if f.scene.catchGame.State().Phase != systems.GameWon {
		t.Fatal("Game was not won")
	}
}

// TestNewGreetingScene 测试初始化状态
func TestNewGreetingScene(t *testing.T) {
	f := newTestScene(t, GreetingOptions{}, false)
	s := f.scene

	if len(s.buttonEntities) != 9 {
		t.Errorf("Expected 9 buttons, got %d", len(s.buttonEntities))
	}
	if s.scrollSystem.ScrollY() != 0 || s.currentSection != 0 {
		t.Error("Scene should start at the landing section")
	}
	if !s.decorations.HeartsRunning() {
		t.Error("Floating hearts should start at launch")
	}
	if s.button(components.ButtonNavReasons).Visible {
		t.Error("Continue button should be hidden until the typewriter finishes")
	}
	if s.button(components.ButtonMusicToggle).Label != "Play" {
		t.Errorf("Music label should start as Play, got %s", s.button(components.ButtonMusicToggle).Label)
	}
	if s.modalActive() {
		t.Error("Modal should start closed")
	}
}

// TestFloatingHeartsSpawnAndExpire 测试首页爱心生成
func TestFloatingHeartsSpawnAndExpire(t *testing.T) {
	f := newTestScene(t, GreetingOptions{}, false)
	f.advance(1)

	hearts := f.scene.decorations.Decorations(components.DecorationFloatingHeart)
	if len(hearts) == 0 {
		t.Fatal("Expected floating hearts after 1s")
	}
	// 最长寿命 = 14 + 2 + 0.5 秒，之后首批爱心必然已被移除
	first := hearts[0]
	f.advance(17)
	if f.scene.entityManager.IsAlive(first) {
		t.Error("Heart should be removed after its lifetime")
	}
}

// TestOpenHeartNavigatesAndAutoplays 测试首页按钮：滚动到留言区并播放音乐
func TestOpenHeartNavigatesAndAutoplays(t *testing.T) {
	f := newTestScene(t, GreetingOptions{}, false)

	if !f.click(t, components.ButtonOpenHeart) {
		t.Fatal("Open heart click should run its handler")
	}
	if !f.track.playing || math.Abs(f.track.volume-0.5) > 1e-9 {
		t.Errorf("Music should autoplay at 0.5, got playing=%v volume=%f", f.track.playing, f.track.volume)
	}
	if f.scene.button(components.ButtonMusicToggle).Label != "Pause" {
		t.Error("Music label should switch to Pause")
	}

	f.advance(1)
	if f.scene.scrollSystem.ScrollY() != float64(config.GameWindowHeight) {
		t.Errorf("Expected scroll at message section, got %f", f.scene.scrollSystem.ScrollY())
	}
	if f.scene.currentSection != config.SectionMessage {
		t.Errorf("Expected current section 1, got %d", f.scene.currentSection)
	}
}

// TestAutoplayFailureKeepsPlayLabel 自动播放失败时按钮文案不变
func TestAutoplayFailureKeepsPlayLabel(t *testing.T) {
	f := newTestScene(t, GreetingOptions{}, true)
	f.click(t, components.ButtonOpenHeart)

	if f.scene.button(components.ButtonMusicToggle).Label != "Play" {
		t.Error("Failed autoplay must keep the Play label")
	}
	f.advance(1)
	if f.scene.currentSection != config.SectionMessage {
		t.Error("Navigation should not depend on audio")
	}
}

// TestMusicToggleFlipsLabel 手动切换总是翻转文案
func TestMusicToggleFlipsLabel(t *testing.T) {
	f := newTestScene(t, GreetingOptions{}, true)

	f.click(t, components.ButtonMusicToggle)
	if f.scene.button(components.ButtonMusicToggle).Label != "Pause" {
		t.Error("Toggle should flip the label even when playback fails")
	}
	f.click(t, components.ButtonMusicToggle)
	if f.scene.button(components.ButtonMusicToggle).Label != "Play" {
		t.Error("Second toggle should flip the label back")
	}
}

// TestTypewriterRevealsContinue 留言区可见后开始打字，结束后显示"继续"
func TestTypewriterRevealsContinue(t *testing.T) {
	f := newTestScene(t, GreetingOptions{}, false)
	f.advance(2)
	if f.scene.typewriter.Started() {
		t.Fatal("Typewriter must not start before the message section is visible")
	}

	f.scene.navigateTo(config.SectionMessage)
	f.advance(1)
	if !f.scene.typewriter.Started() {
		t.Fatal("Typewriter should start once the message section is 40% visible")
	}

	f.advance(40)
	if !f.scene.typewriter.Finished() {
		t.Fatal("Typewriter should finish within 40s")
	}
	if f.scene.typewriter.Output() != config.DefaultGreetingConfig().TypewriterText() {
		t.Error("Typewriter output should equal the full script")
	}
	button := f.scene.button(components.ButtonNavReasons)
	if !button.Visible || button.FadeIn != 1 {
		t.Errorf("Continue button should be visible and faded in, got visible=%v fade=%f", button.Visible, button.FadeIn)
	}

	f.click(t, components.ButtonNavReasons)
	f.advance(1)
	if f.scene.currentSection != config.SectionReasons {
		t.Errorf("Continue should navigate to reasons, got %d", f.scene.currentSection)
	}
}

// TestReasonsRevealWhenVisible 理由卡片进入视口后渐显
func TestReasonsRevealWhenVisible(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionReasons}, false)
	f.advance(2)

	reveals := f.scene.revealSystem.InSection(config.SectionReasons)
	if len(reveals) != len(config.DefaultGreetingConfig().Reasons)+1 {
		t.Fatalf("Expected title + reasons, got %d", len(reveals))
	}
	for _, r := range reveals {
		if alpha, _ := systems.RevealPose(r); alpha != 1 {
			t.Errorf("Reveal %d should be fully visible, alpha=%f", r.Index, alpha)
		}
	}
}

// TestPointerCatchesTarget 点击下落目标计分
func TestPointerCatchesTarget(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionGame}, false)
	f.click(t, components.ButtonStartGame)
	f.advance(1)

	targets := f.scene.catchGame.Targets()
	if len(targets) == 0 {
		t.Fatal("Expected a falling target after 1s")
	}
	target, _ := ecs.GetComponent[*components.GameTargetComponent](f.scene.entityManager, targets[0])
	// 让目标落到区域中部
	target.Age = target.FallDuration / 2
	area := f.scene.layout.GameArea()
	docX := area.X + target.X + target.Size/2
	docY := area.Y + f.scene.catchGame.TargetY(target) + target.Size/2
	x, y := f.scene.scrollSystem.ToScreen(docX, docY)

	f.inputs = append(f.inputs, utils.InputFrame{Pointer: utils.PointerFrame{X: x, Y: y, JustPressed: true}})
	f.scene.Update(frame)

	if f.scene.catchGame.State().Score != 1 {
		t.Errorf("Expected score 1 after clicking a target, got %d", f.scene.catchGame.State().Score)
	}
}

// TestStartButtonDisabledWhileRunning 运行中开始按钮不可用
func TestStartButtonDisabledWhileRunning(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionGame}, false)
	f.click(t, components.ButtonStartGame)
	f.scene.Update(frame)

	if f.scene.button(components.ButtonStartGame).Enabled {
		t.Error("Start button should be disabled while the game runs")
	}
}

// TestWinOpensModal 胜利后延迟打开弹窗，并屏蔽页面按钮
func TestWinOpensModal(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionGame}, false)
	f.winGame(t)

	if f.scene.modalActive() {
		t.Error("Modal should open only after the win delay")
	}
	f.advance(0.7)
	if !f.scene.modalActive() {
		t.Fatal("Modal should be open after the win delay")
	}
	if !f.scene.button(components.ButtonModalYes).Visible || !f.scene.button(components.ButtonModalNo).Visible {
		t.Error("Modal buttons should be visible")
	}
	if f.click(t, components.ButtonNavGame) {
		t.Error("Page buttons must not respond while the modal is open")
	}

	// 弹窗打开时方向键不翻页
	section := f.scene.currentSection
	f.inputs = append(f.inputs, utils.InputFrame{Keys: utils.KeyFrame{SectionNext: true}})
	f.scene.Update(frame)
	if f.scene.currentSection != section {
		t.Error("Keyboard navigation should be blocked by the modal")
	}
}

// TestModalYesCelebrates 弹窗"是"：关闭弹窗、滚动到结尾、放彩纸
func TestModalYesCelebrates(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionGame}, false)
	f.winGame(t)
	f.advance(0.7)

	if !f.click(t, components.ButtonModalYes) {
		t.Fatal("Modal yes should run its handler")
	}
	if f.scene.modalActive() {
		t.Error("Modal should close")
	}
	if !f.scene.celebrationVisible {
		t.Error("Celebration panel should be shown")
	}
	if len(f.scene.confetti.Runs()) != 1 {
		t.Errorf("Expected 1 confetti run, got %d", len(f.scene.confetti.Runs()))
	}

	f.advance(1)
	if f.scene.currentSection != config.SectionFinal {
		t.Errorf("Expected final section, got %d", f.scene.currentSection)
	}
	if f.scene.button(components.ButtonModalYes).Visible {
		t.Error("Modal buttons should be hidden after closing")
	}
}

// TestModalNoDodgesInsideCard 弹窗"再想想"躲避但不改变状态
func TestModalNoDodgesInsideCard(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionGame}, false)
	f.winGame(t)
	f.advance(0.7)

	entity := f.scene.buttonEntities[components.ButtonModalNo]
	card := f.scene.layout.ModalCard().Inset(f.scene.cfg.Proposal.ModalDodge)
	for i := 0; i < 20; i++ {
		f.scene.buttonSystem.Focus(entity)
		rect := f.scene.buttonSystem.ScreenRect(entity)
		if !card.ContainsRect(rect) {
			t.Fatalf("Dodged button %v escaped the modal card %v", rect, card)
		}
	}

	f.click(t, components.ButtonModalNo)
	if !f.scene.modalActive() {
		t.Error("Think again must not close the modal")
	}
	dodge, _ := ecs.GetComponent[*components.DodgeComponent](f.scene.entityManager, entity)
	if dodge.Dodges < 20 {
		t.Errorf("Expected at least 20 dodges, got %d", dodge.Dodges)
	}
}

// TestFinalYesOpensLinkAfterDelay 结尾"是"：立即放彩纸，1.5 秒后打开链接
func TestFinalYesOpensLinkAfterDelay(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionFinal}, false)

	f.click(t, components.ButtonFinalYes)
	if len(f.scene.confetti.Runs()) != 1 {
		t.Error("Final yes should launch confetti immediately")
	}

	f.advance(1.4)
	if len(f.opener.links) != 0 {
		t.Fatal("Link must not open before the delay")
	}
	f.advance(0.2)
	if len(f.opener.links) != 1 {
		t.Fatalf("Expected one opened link, got %d", len(f.opener.links))
	}
	cfg := config.DefaultGreetingConfig()
	if want := utils.BuildWhatsAppURL(cfg.Proposal.Phone, cfg.Proposal.Message); f.opener.links[0] != want {
		t.Errorf("Unexpected link:\n got %s\nwant %s", f.opener.links[0], want)
	}
}

// TestFinalYesOpenerErrorIsSwallowed 链接打开失败只记录日志
func TestFinalYesOpenerErrorIsSwallowed(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionFinal}, false)
	f.opener.err = errors.New("no browser")

	f.click(t, components.ButtonFinalYes)
	f.advance(2)
	if len(f.opener.links) != 1 {
		t.Error("Opener should still be called once")
	}
}

// TestFinalNoSuppressesClick 结尾"不"拦截点击并抖动
func TestFinalNoSuppressesClick(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionFinal}, false)
	entity := f.scene.buttonEntities[components.ButtonFinalNo]

	if f.click(t, components.ButtonFinalNo) {
		t.Error("Final no click should be suppressed")
	}
	dodge, _ := ecs.GetComponent[*components.DodgeComponent](f.scene.entityManager, entity)
	if dodge.Dodges != 1 || dodge.ShakeRemaining <= 0 {
		t.Errorf("Expected one dodge with shake, got dodges=%d shake=%f", dodge.Dodges, dodge.ShakeRemaining)
	}

	f.advance(0.5)
	if dodge.ShakeRemaining != 0 {
		t.Error("Shake should end after 400ms")
	}
	box := f.scene.layout.FinalProposal().Inset(f.scene.cfg.Proposal.FinaleDodge)
	button := f.scene.button(components.ButtonFinalNo)
	rect := utils.Rect{X: button.X + button.OffsetX, Y: button.Y + button.OffsetY, W: button.Width, H: button.Height}
	if !box.ContainsRect(rect) {
		t.Errorf("Dodged button %v escaped the proposal box %v", rect, box)
	}
}

// TestSparklesStartWhenFinalVisible 结尾区可见后开始闪光，20 秒后停止
func TestSparklesStartWhenFinalVisible(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionFinal}, false)
	f.advance(1)

	if !f.scene.decorations.SparklesRunning() {
		t.Fatal("Sparkles should start when the final section is visible")
	}
	if len(f.scene.decorations.Decorations(components.DecorationSparkle)) == 0 {
		t.Error("Expected sparkles after 1s")
	}
	f.advance(20)
	if f.scene.decorations.SparklesRunning() {
		t.Error("Sparkle emitter should stop after 20s")
	}
}

// TestKeyboardNavigation 方向键翻页，越界忽略
func TestKeyboardNavigation(t *testing.T) {
	f := newTestScene(t, GreetingOptions{}, false)

	f.inputs = append(f.inputs, utils.InputFrame{Keys: utils.KeyFrame{SectionPrev: true}})
	f.scene.Update(frame)
	if f.scene.currentSection != 0 {
		t.Error("ArrowUp at the first section should be ignored")
	}

	f.inputs = append(f.inputs, utils.InputFrame{Keys: utils.KeyFrame{SectionNext: true}})
	f.advance(1)
	if f.scene.currentSection != 1 || f.scene.scrollSystem.ScrollY() != float64(config.GameWindowHeight) {
		t.Errorf("ArrowDown should scroll to section 1, got %d (y=%f)", f.scene.currentSection, f.scene.scrollSystem.ScrollY())
	}
}

// TestWheelScrollFollowsNearestSection 滚轮自由滚动，当前分区跟随视口
func TestWheelScrollFollowsNearestSection(t *testing.T) {
	f := newTestScene(t, GreetingOptions{}, false)

	f.inputs = append(f.inputs, utils.InputFrame{WheelY: 3})
	f.scene.Update(frame)
	if got := f.scene.scrollSystem.ScrollY(); got != 3*config.WheelScrollSpeed {
		t.Errorf("Expected scroll %f, got %f", 3*config.WheelScrollSpeed, got)
	}

	f.inputs = append(f.inputs, utils.InputFrame{WheelY: 12})
	f.scene.Update(frame)
	if f.scene.currentSection != 1 {
		t.Errorf("Current section should follow the viewport, got %d", f.scene.currentSection)
	}
}

// TestStartSectionOption 测试 --section 启动参数
func TestStartSectionOption(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionGame}, false)
	if f.scene.scrollSystem.ScrollY() != float64(config.SectionGame*config.GameWindowHeight) {
		t.Errorf("Expected scroll at game section, got %f", f.scene.scrollSystem.ScrollY())
	}

	f = newTestScene(t, GreetingOptions{StartSection: 9}, false)
	if f.scene.scrollSystem.ScrollY() != 0 || f.scene.currentSection != 0 {
		t.Error("Out-of-range start section should fall back to the landing section")
	}
}

// TestResizeUpdatesLayout 窗口尺寸变化同步到滚动、小游戏和彩纸
func TestResizeUpdatesLayout(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionReasons}, false)
	f.scene.Resize(800, 600)

	w, h := f.scene.catchGame.Area()
	if math.Abs(w-800*config.GameAreaWidthRatio) > 1e-9 || math.Abs(h-600*config.GameAreaHeightRatio) > 1e-9 {
		t.Errorf("Unexpected game area %fx%f", w, h)
	}
	if cw, ch := f.scene.confetti.Size(); cw != 800 || ch != 600 {
		t.Errorf("Confetti canvas should follow the viewport, got %fx%f", cw, ch)
	}
	if f.scene.scrollSystem.ScrollY() != 2*600 {
		t.Errorf("Scroll should stay aligned to the current section, got %f", f.scene.scrollSystem.ScrollY())
	}
	toggle := f.scene.button(components.ButtonMusicToggle)
	if toggle.X+toggle.Width > 800 || toggle.Y+toggle.Height > 600 {
		t.Error("Music toggle should stay inside the window")
	}

	// 非法尺寸被忽略
	f.scene.Resize(0, 0)
	if cw, _ := f.scene.confetti.Size(); cw != 800 {
		t.Error("Zero size should be ignored")
	}
}

// TestOnExitStopsMusic 退出时停止音乐并清理定时器
func TestOnExitStopsMusic(t *testing.T) {
	f := newTestScene(t, GreetingOptions{}, false)
	f.click(t, components.ButtonOpenHeart)

	if !f.scene.OnExit() {
		t.Error("OnExit should succeed")
	}
	if f.track.playing {
		t.Error("Music should stop on exit")
	}
	if f.scene.scheduler.PendingCount() != 0 {
		t.Error("Pending timers should be cleared on exit")
	}
}

// TestSceneWithoutOptionalDependencies 音频与链接打开器缺失时流程照常
func TestSceneWithoutOptionalDependencies(t *testing.T) {
	s := NewGreetingScene(config.DefaultGreetingConfig(), nil, nil, nil, GreetingOptions{Seed: 7, StartSection: config.SectionFinal})
	s.readInput = func() utils.InputFrame { return utils.InputFrame{} }

	entity := s.buttonEntities[components.ButtonFinalYes]
	s.buttonSystem.Click(entity)
	for i := 0; i < 120; i++ {
		s.Update(frame)
	}
	s.onMusicToggle()
	if s.button(components.ButtonMusicToggle).Label != "Play" {
		t.Error("Without audio the label stays Play")
	}
}

// TestGreetingSceneDrawDoesNotPanic Draw 应该不会崩溃
func TestGreetingSceneDrawDoesNotPanic(t *testing.T) {
	f := newTestScene(t, GreetingOptions{StartSection: config.SectionFinal}, false)
	f.click(t, components.ButtonFinalYes)
	f.advance(0.5)

	screen := ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
	f.scene.Draw(screen)
	f.scene.Draw(screen)
}
