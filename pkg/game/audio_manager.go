package game

import (
	"log"
)

// MusicTrack 可暂停的循环音轨
// *audio.Player 满足此接口
type MusicTrack interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
}

// TrackLoader 按路径加载音轨
type TrackLoader func(path string) (MusicTrack, error)

// AudioManager 背景音乐管理器
//
// 职责：
//   - 管理唯一一首共享的循环背景音乐
//   - 维护"期望播放状态"（决定开关按钮的文案）
//   - 与 SettingsManager 联动：总音量与播放偏好
//
// 播放失败（文件缺失、解码失败、音频不可用）只记录日志：
// 自动播放失败时期望状态保持不变；用户主动切换时期望状态总是翻转。
type AudioManager struct {
	loader          TrackLoader
	settingsManager *SettingsManager
	path            string

	track   MusicTrack
	playing bool
	// volume 最近一次播放使用的场景音量（未乘总音量）
	volume float64
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - loader: 音轨加载函数，可为 nil（禁用音乐）
//   - sm: SettingsManager 实例，可为 nil
//   - path: 背景音乐资源路径
func NewAudioManager(loader TrackLoader, sm *SettingsManager, path string) *AudioManager {
	return &AudioManager{
		loader:          loader,
		settingsManager: sm,
		path:            path,
	}
}

// Autoplay 打开贺卡时自动播放
// 返回是否真正开始播放；已在播放时直接返回 true
func (am *AudioManager) Autoplay(volume float64) bool {
	if am.playing {
		return true
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		log.Printf("[AudioManager] Autoplay skipped: music disabled in settings")
		return false
	}

	track := am.ensureTrack()
	if track == nil {
		return false
	}
	am.start(track, volume)
	am.playing = true
	return true
}

// Toggle 用户点击音乐开关
// 翻转期望状态并返回新状态；实际播放失败时按钮文案仍然翻转
func (am *AudioManager) Toggle(resumeVolume float64) bool {
	am.playing = !am.playing

	if am.playing {
		if track := am.ensureTrack(); track != nil {
			am.start(track, resumeVolume)
		}
	} else if am.track != nil {
		am.track.Pause()
		log.Printf("[AudioManager] Music paused")
	}

	am.persist()
	return am.playing
}

// Stop 暂停音乐并清除期望状态（场景退出时调用）
func (am *AudioManager) Stop() {
	if am.track != nil {
		am.track.Pause()
	}
	am.playing = false
}

// Playing 返回期望播放状态
func (am *AudioManager) Playing() bool {
	return am.playing
}

// Label 返回开关按钮文案
func (am *AudioManager) Label() string {
	if am.playing {
		return "Pause"
	}
	return "Play"
}

// SetMusicVolume 设置音乐总音量并立即应用到当前音轨
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	if am.track != nil {
		am.track.SetVolume(am.scaled(am.volume))
	}
}

// start 设置音量并播放
func (am *AudioManager) start(track MusicTrack, volume float64) {
	am.volume = volume
	v := am.scaled(volume)
	track.SetVolume(v)
	track.Play()
	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", am.path, v)
}

// scaled 将场景音量与设置中的总音量相乘
func (am *AudioManager) scaled(volume float64) float64 {
	master := 1.0
	if am.settingsManager != nil {
		master = am.settingsManager.GetSettings().MusicVolume
	}
	return clampVolume(volume * master)
}

// ensureTrack 获取或加载音轨，失败时返回 nil
// 失败不缓存，下一次用户操作会重试
func (am *AudioManager) ensureTrack() MusicTrack {
	if am.track != nil {
		return am.track
	}
	if am.loader == nil {
		log.Printf("[AudioManager] Warning: no track loader, music unavailable")
		return nil
	}
	track, err := am.loader(am.path)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load music %s: %v", am.path, err)
		return nil
	}
	am.track = track
	return track
}

// persist 记录播放偏好
func (am *AudioManager) persist() {
	if am.settingsManager == nil {
		return
	}
	am.settingsManager.SetMusicEnabled(am.playing)
	if err := am.settingsManager.Save(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to save music preference: %v", err)
	}
}
