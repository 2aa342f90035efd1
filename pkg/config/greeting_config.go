package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/valentine/pkg/embedded"
)

// DefaultGreetingConfigPath 嵌入资源中的默认配置路径
const DefaultGreetingConfigPath = "data/greeting.yaml"

// GreetingConfig 贺卡的全部可配置内容（文案、节奏、游戏参数、彩纸物理参数）
// 时间单位统一为秒
type GreetingConfig struct {
	Typewriter TypewriterConfig `yaml:"typewriter"`
	Hearts     HeartsConfig     `yaml:"hearts"`
	Sparkles   SparklesConfig   `yaml:"sparkles"`
	Game       CatchGameConfig  `yaml:"game"`
	Confetti   ConfettiConfig   `yaml:"confetti"`
	Proposal   ProposalConfig   `yaml:"proposal"`
	Music      MusicConfig      `yaml:"music"`
	Buttons    ButtonLabels     `yaml:"buttons"`
	Sections   []SectionConfig  `yaml:"sections"`
	Reasons    []string         `yaml:"reasons"`
}

// TypewriterConfig 打字机文案与节奏
type TypewriterConfig struct {
	Lines        []string `yaml:"lines"`
	StartDelay   float64  `yaml:"startDelay"`   // 可见后首字延迟
	CharDelay    float64  `yaml:"charDelay"`    // 普通字符
	CommaDelay   float64  `yaml:"commaDelay"`   // 逗号
	PeriodDelay  float64  `yaml:"periodDelay"`  // 句号
	NewlineDelay float64  `yaml:"newlineDelay"` // 换行
	SettleDelay  float64  `yaml:"settleDelay"`  // 打完后隐藏光标前的等待
	Threshold    float64  `yaml:"threshold"`    // 触发所需可见比例
}

// HeartsConfig 首页漂浮爱心
type HeartsConfig struct {
	Glyphs       []string `yaml:"glyphs"`
	InitialBurst int      `yaml:"initialBurst"` // 首批数量
	BurstStagger float64  `yaml:"burstStagger"` // 首批间隔
	MinInterval  float64  `yaml:"minInterval"`
	MaxInterval  float64  `yaml:"maxInterval"`
	MinDuration  float64  `yaml:"minDuration"`
	MaxDuration  float64  `yaml:"maxDuration"`
	MaxDelay     float64  `yaml:"maxDelay"`
	MinSize      float64  `yaml:"minSize"`
	MaxSize      float64  `yaml:"maxSize"`
	RemoveGrace  float64  `yaml:"removeGrace"`
}

// SparklesConfig 结尾区域闪光
type SparklesConfig struct {
	Glyph       string  `yaml:"glyph"`
	Interval    float64 `yaml:"interval"`
	RunFor      float64 `yaml:"runFor"` // 发射器持续时间
	MinSize     float64 `yaml:"minSize"`
	MaxSize     float64 `yaml:"maxSize"`
	MinDuration float64 `yaml:"minDuration"`
	MaxDuration float64 `yaml:"maxDuration"`
	Lifetime    float64 `yaml:"lifetime"`
	Threshold   float64 `yaml:"threshold"`
}

// CatchGameConfig 接爱心小游戏
type CatchGameConfig struct {
	Glyphs         []string `yaml:"glyphs"`
	TargetScore    int      `yaml:"targetScore"`
	SpawnInterval  float64  `yaml:"spawnInterval"`
	MinFall        float64  `yaml:"minFall"`
	MaxFall        float64  `yaml:"maxFall"`
	TargetSize     float64  `yaml:"targetSize"`
	CatchRemoval   float64  `yaml:"catchRemoval"`   // 被接住后移除延迟
	ExpiryGrace    float64  `yaml:"expiryGrace"`    // 自然落地后的额外停留
	WinModalDelay  float64  `yaml:"winModalDelay"`  // 胜利后弹窗延迟
	ScorePopLength float64  `yaml:"scorePopLength"` // 分数放大动画时长
}

// ConfettiWave 追加波次
type ConfettiWave struct {
	Delay float64 `yaml:"delay"`
	Count int     `yaml:"count"`
}

// ConfettiConfig 彩纸粒子模拟参数（速度单位：像素/帧）
type ConfettiConfig struct {
	Palette      []string       `yaml:"palette"`
	InitialCount int            `yaml:"initialCount"`
	Waves        []ConfettiWave `yaml:"waves"`
	Gravity      float64        `yaml:"gravity"`
	Damping      float64        `yaml:"damping"`
	FadeStart    float64        `yaml:"fadeStart"` // 画布高度比例
	FadeStep     float64        `yaml:"fadeStep"`
}

// ProposalConfig 表白流程与外部链接
type ProposalConfig struct {
	Phone       string  `yaml:"phone"`
	Message     string  `yaml:"message"`
	LinkDelay   float64 `yaml:"linkDelay"`
	ModalDodge  float64 `yaml:"modalDodgePadding"`
	FinaleDodge float64 `yaml:"finaleDodgePadding"`
	ShakeLength float64 `yaml:"shakeLength"`

	ModalTitle         string `yaml:"modalTitle"`
	ModalMessage       string `yaml:"modalMessage"`
	CelebrationTitle   string `yaml:"celebrationTitle"`
	CelebrationMessage string `yaml:"celebrationMessage"`
}

// ButtonLabels 按钮文案
type ButtonLabels struct {
	OpenHeart string `yaml:"openHeart"`
	Continue  string `yaml:"continue"`
	ToGame    string `yaml:"toGame"`
	StartGame string `yaml:"startGame"`
	ModalYes  string `yaml:"modalYes"`
	ModalNo   string `yaml:"modalNo"`
	FinalYes  string `yaml:"finalYes"`
	FinalNo   string `yaml:"finalNo"`
}

// MusicConfig 背景音乐
type MusicConfig struct {
	Path           string  `yaml:"path"`
	AutoplayVolume float64 `yaml:"autoplayVolume"`
	ToggleVolume   float64 `yaml:"toggleVolume"`
}

// SectionConfig 页面区块标题
type SectionConfig struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

// DefaultGreetingConfig 返回内置默认配置
func DefaultGreetingConfig() *GreetingConfig {
	return &GreetingConfig{
		Typewriter: TypewriterConfig{
			Lines: []string{
				"I don't know why... my heart just beats differently.",
				"There's something about you that makes everything feel brighter, softer, and alive.",
				"And I can't help but feel this quietly, beautifully... just for you. 💖",
			},
			StartDelay:   0.6,
			CharDelay:    0.05,
			CommaDelay:   0.2,
			PeriodDelay:  0.4,
			NewlineDelay: 0.6,
			SettleDelay:  1.0,
			Threshold:    0.4,
		},
		Hearts: HeartsConfig{
			Glyphs:       []string{"💖", "💕", "💗", "💓", "💘", "💝", "🩷", "♥️"},
			InitialBurst: 15,
			BurstStagger: 0.3,
			MinInterval:  0.4,
			MaxInterval:  1.0,
			MinDuration:  6,
			MaxDuration:  14,
			MaxDelay:     2,
			MinSize:      16,
			MaxSize:      40,
			RemoveGrace:  0.5,
		},
		Sparkles: SparklesConfig{
			Glyph:       "✨",
			Interval:    0.3,
			RunFor:      20,
			MinSize:     8,
			MaxSize:     24,
			MinDuration: 1.5,
			MaxDuration: 3.5,
			Lifetime:    4,
			Threshold:   0.3,
		},
		Game: CatchGameConfig{
			Glyphs:         []string{"❤️", "💖", "💗", "💕", "💘", "🩷"},
			TargetScore:    10,
			SpawnInterval:  0.6,
			MinFall:        2,
			MaxFall:        4,
			TargetSize:     40,
			CatchRemoval:   0.4,
			ExpiryGrace:    0.1,
			WinModalDelay:  0.6,
			ScorePopLength: 0.2,
		},
		Confetti: ConfettiConfig{
			Palette: []string{
				"#ff6b9d", "#c084fc", "#ffd54f", "#f48fb1",
				"#e91e63", "#9c27b0", "#ff9800", "#4caf50",
				"#2196f3", "#ffffff",
			},
			InitialCount: 200,
			Waves: []ConfettiWave{
				{Delay: 1.0, Count: 150},
				{Delay: 2.5, Count: 100},
			},
			Gravity:   0.05,
			Damping:   0.99,
			FadeStart: 0.8,
			FadeStep:  0.02,
		},
		Proposal: ProposalConfig{
			Phone:       "94779275387",
			Message:     "I just finished your Valentine surprise 💖 Yes… YES 💕 💖 Forever With You❤️",
			LinkDelay:   1.5,
			ModalDodge:  10,
			FinaleDodge: 20,
			ShakeLength: 0.4,

			ModalTitle:         "You caught my heart 💘",
			ModalMessage:       "Now that you have it... will you keep it?",
			CelebrationTitle:   "Yay! 💖",
			CelebrationMessage: "You just made me the happiest person alive",
		},
		Buttons: ButtonLabels{
			OpenHeart: "Open My Heart 💌",
			Continue:  "Continue",
			ToGame:    "One more thing",
			StartGame: "Start Game",
			ModalYes:  "Yes 💖",
			ModalNo:   "Think again",
			FinalYes:  "Yes 💖",
			FinalNo:   "No",
		},
		Music: MusicConfig{
			Path:           "assets/audio/love_theme.ogg",
			AutoplayVolume: 0.5,
			ToggleVolume:   0.4,
		},
		Sections: []SectionConfig{
			{ID: "landing", Title: "Hey, you 💌", Subtitle: "I made something for you"},
			{ID: "message", Title: "A little message"},
			{ID: "reasons", Title: "Reasons you make me smile"},
			{ID: "game", Title: "Catch my heart", Subtitle: "Catch 10 hearts to unlock a question"},
			{ID: "final", Title: "So... will you be my Valentine?"},
		},
		Reasons: []string{
			"Your laugh fixes my worst days",
			"You listen, really listen",
			"You make ordinary moments feel like adventures",
			"You are my favourite notification",
		},
	}
}

// LoadGreetingConfig 加载配置
//
// path 为空时读取嵌入的默认配置；否则优先读取磁盘文件。
// 文件中缺省的字段保留默认值。
func LoadGreetingConfig(path string) (*GreetingConfig, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = embedded.ReadFile(DefaultGreetingConfigPath)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read greeting config: %w", err)
	}
	return ParseGreetingConfig(data)
}

// ParseGreetingConfig 从 YAML 数据解析配置并校验
func ParseGreetingConfig(data []byte) (*GreetingConfig, error) {
	cfg := DefaultGreetingConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse greeting YAML: %w", err)
	}
	if err := validateGreetingConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid greeting config: %w", err)
	}
	return cfg, nil
}

// validateGreetingConfig 验证配置的有效性
func validateGreetingConfig(cfg *GreetingConfig) error {
	if len(cfg.Typewriter.Lines) == 0 {
		return fmt.Errorf("typewriter.lines cannot be empty")
	}
	if cfg.Typewriter.Threshold <= 0 || cfg.Typewriter.Threshold > 1 {
		return fmt.Errorf("typewriter.threshold must be in (0, 1], got %f", cfg.Typewriter.Threshold)
	}

	if len(cfg.Hearts.Glyphs) == 0 {
		return fmt.Errorf("hearts.glyphs cannot be empty")
	}
	if cfg.Hearts.MaxInterval < cfg.Hearts.MinInterval || cfg.Hearts.MinInterval <= 0 {
		return fmt.Errorf("hearts interval range invalid: [%f, %f)", cfg.Hearts.MinInterval, cfg.Hearts.MaxInterval)
	}

	if cfg.Sparkles.Interval <= 0 {
		return fmt.Errorf("sparkles.interval must be > 0, got %f", cfg.Sparkles.Interval)
	}

	if len(cfg.Game.Glyphs) == 0 {
		return fmt.Errorf("game.glyphs cannot be empty")
	}
	if cfg.Game.TargetScore < 1 {
		return fmt.Errorf("game.targetScore must be >= 1, got %d", cfg.Game.TargetScore)
	}
	if cfg.Game.SpawnInterval <= 0 {
		return fmt.Errorf("game.spawnInterval must be > 0, got %f", cfg.Game.SpawnInterval)
	}
	if cfg.Game.MinFall <= 0 || cfg.Game.MaxFall < cfg.Game.MinFall {
		return fmt.Errorf("game fall range invalid: [%f, %f)", cfg.Game.MinFall, cfg.Game.MaxFall)
	}

	if len(cfg.Confetti.Palette) == 0 {
		return fmt.Errorf("confetti.palette cannot be empty")
	}
	for _, hex := range cfg.Confetti.Palette {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("confetti.palette: %w", err)
		}
	}
	if cfg.Confetti.InitialCount < 0 {
		return fmt.Errorf("confetti.initialCount must be >= 0, got %d", cfg.Confetti.InitialCount)
	}
	for i, wave := range cfg.Confetti.Waves {
		if wave.Count < 0 || wave.Delay < 0 {
			return fmt.Errorf("confetti.waves[%d] invalid: delay=%f count=%d", i, wave.Delay, wave.Count)
		}
	}
	if cfg.Confetti.FadeStep <= 0 {
		return fmt.Errorf("confetti.fadeStep must be > 0, got %f", cfg.Confetti.FadeStep)
	}

	if cfg.Proposal.Phone == "" {
		return fmt.Errorf("proposal.phone cannot be empty")
	}
	for _, r := range cfg.Proposal.Phone {
		if r < '0' || r > '9' {
			return fmt.Errorf("proposal.phone must contain digits only, got %q", cfg.Proposal.Phone)
		}
	}

	if cfg.Music.AutoplayVolume < 0 || cfg.Music.AutoplayVolume > 1 ||
		cfg.Music.ToggleVolume < 0 || cfg.Music.ToggleVolume > 1 {
		return fmt.Errorf("music volumes must be in [0, 1]")
	}

	if len(cfg.Sections) != SectionCount {
		return fmt.Errorf("sections must list exactly %d entries, got %d", SectionCount, len(cfg.Sections))
	}

	return nil
}

// TypewriterText 返回完整打字机文本（各行以换行连接）
func (cfg *GreetingConfig) TypewriterText() string {
	return strings.Join(cfg.Typewriter.Lines, "\n")
}

// PaletteColors 将调色板转换为颜色值
// 配置已通过校验，非法项在这里被跳过
func (cfg *GreetingConfig) PaletteColors() []color.RGBA {
	colors := make([]color.RGBA, 0, len(cfg.Confetti.Palette))
	for _, hex := range cfg.Confetti.Palette {
		c, err := ParseHexColor(hex)
		if err != nil {
			continue
		}
		colors = append(colors, c)
	}
	return colors
}

// ParseHexColor 解析 "#rrggbb" 格式的颜色
func ParseHexColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
