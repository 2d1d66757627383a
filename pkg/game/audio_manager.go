package game

import (
	"bytes"
	"fmt"
	"log"

	"github.com/decker502/forestleeches/pkg/sfx"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 统一管理音效和背景音乐的播放
//
// 声音数据来自 sfx.Bank（启动时合成的 PCM），音量与开关从 SettingsManager 读取。
// audioContext 或 bank 为 nil 时进入静音降级模式，所有播放调用返回 false。
type AudioManager struct {
	audioContext    *audio.Context
	bank            *sfx.Bank
	settingsManager *SettingsManager

	soundPlayers   map[sfx.SoundID]*audio.Player
	currentMusic   *audio.Player
	currentMusicID sfx.SoundID
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文（采样率必须为 sfx.SampleRate），可为 nil
//   - bank: 预渲染的声音库，可为 nil
//   - sm: 设置管理器，可为 nil（使用满音量）
func NewAudioManager(ctx *audio.Context, bank *sfx.Bank, sm *SettingsManager) *AudioManager {
	if ctx != nil && ctx.SampleRate() != sfx.SampleRate {
		log.Printf("[AudioManager] Warning: sample rate %d != %d, audio disabled", ctx.SampleRate(), sfx.SampleRate)
		ctx = nil
	}
	return &AudioManager{
		audioContext:    ctx,
		bank:            bank,
		settingsManager: sm,
		soundPlayers:    make(map[sfx.SoundID]*audio.Player),
	}
}

// Enabled 是否有可用的音频输出
func (am *AudioManager) Enabled() bool {
	return am != nil && am.audioContext != nil && am.bank != nil
}

// PlaySound 播放一次音效（同一音效再次播放会从头开始）
func (am *AudioManager) PlaySound(id sfx.SoundID) bool {
	if !am.Enabled() {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player, err := am.soundPlayer(id)
	if err != nil {
		log.Printf("[AudioManager] Warning: %v", err)
		return false
	}
	player.SetVolume(am.soundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// PlayMusic 播放背景音乐，同一时间只有一首
//
// 参数：
//   - id: 声音ID
//   - loop: 是否无限循环（结算音乐只播一次）
func (am *AudioManager) PlayMusic(id sfx.SoundID, loop bool) bool {
	if !am.Enabled() {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return false
	}
	if am.currentMusicID == id && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}
	am.StopMusic()

	pcm, ok := am.bank.PCM(id)
	if !ok {
		log.Printf("[AudioManager] Warning: unknown music %s", id)
		return false
	}
	var player *audio.Player
	var err error
	if loop {
		player, err = am.audioContext.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm))))
	} else {
		player = am.audioContext.NewPlayerFromBytes(pcm)
	}
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create music player %s: %v", id, err)
		return false
	}

	volume := am.musicVolume()
	player.SetVolume(volume)
	player.Play()
	am.currentMusic = player
	am.currentMusicID = id

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f, loop: %v)", id, volume, loop)
	return true
}

// StopMusic 停止当前音乐
func (am *AudioManager) StopMusic() {
	if am == nil || am.currentMusic == nil {
		return
	}
	am.currentMusic.Pause()
	if err := am.currentMusic.Close(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to close music player: %v", err)
	}
	am.currentMusic = nil
	am.currentMusicID = ""
}

// StopAll 停止音乐和所有正在播放的音效
func (am *AudioManager) StopAll() {
	if am == nil {
		return
	}
	am.StopMusic()
	for _, p := range am.soundPlayers {
		p.Pause()
	}
}

// PauseMusic 暂停当前音乐
func (am *AudioManager) PauseMusic() {
	if am != nil && am.currentMusic != nil {
		am.currentMusic.Pause()
	}
}

// ResumeMusic 恢复当前音乐（音乐被关闭时不恢复）
func (am *AudioManager) ResumeMusic() {
	if am == nil || am.currentMusic == nil {
		return
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return
	}
	am.currentMusic.Play()
}

// ApplySettings 设置变化后立即应用到当前音乐
func (am *AudioManager) ApplySettings() {
	if am == nil || am.currentMusic == nil {
		return
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		am.StopMusic()
		return
	}
	am.currentMusic.SetVolume(am.musicVolume())
}

// CurrentMusic 当前音乐ID，没有时为空
func (am *AudioManager) CurrentMusic() sfx.SoundID {
	if am == nil {
		return ""
	}
	return am.currentMusicID
}

func (am *AudioManager) soundPlayer(id sfx.SoundID) (*audio.Player, error) {
	if p, ok := am.soundPlayers[id]; ok {
		return p, nil
	}
	pcm, ok := am.bank.PCM(id)
	if !ok {
		return nil, fmt.Errorf("unknown sound %s", id)
	}
	p := am.audioContext.NewPlayerFromBytes(pcm)
	am.soundPlayers[id] = p
	return p, nil
}

func (am *AudioManager) musicVolume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	return am.settingsManager.GetSettings().MusicVolume
}

func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	return am.settingsManager.GetSettings().SoundVolume
}
