package main

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/forestleeches/pkg/sfx"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerAudio 用 beep/speaker 直接播放合成音效
// nil 接收者上的所有方法都是空操作（--sound=false 或初始化失败）
type speakerAudio struct {
	buffers map[sfx.SoundID]*beep.Buffer
	music   *beep.Ctrl
}

func newSpeakerAudio() (*speakerAudio, error) {
	format := beep.Format{SampleRate: sfx.SampleRate, NumChannels: 2, Precision: 2}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}

	a := &speakerAudio{buffers: make(map[sfx.SoundID]*beep.Buffer, len(sfx.AllSounds))}
	for _, id := range sfx.AllSounds {
		s, err := sfx.Synthesize(id, format.SampleRate)
		if err != nil {
			speaker.Close()
			return nil, err
		}
		buf := beep.NewBuffer(format)
		buf.Append(s)
		a.buffers[id] = buf
	}
	log.Printf("[tty] speaker ready (%d sounds)", len(a.buffers))
	return a, nil
}

func (a *speakerAudio) play(id sfx.SoundID) {
	if a == nil {
		return
	}
	if buf, ok := a.buffers[id]; ok {
		speaker.Play(buf.Streamer(0, buf.Len()))
	}
}

// startMusic 无限循环背景音乐
func (a *speakerAudio) startMusic() {
	if a == nil {
		return
	}
	a.stopMusic()
	buf := a.buffers[sfx.SoundBGM]
	a.music = &beep.Ctrl{Streamer: beep.Iterate(func() beep.Streamer {
		return buf.Streamer(0, buf.Len())
	})}
	speaker.Play(a.music)
}

func (a *speakerAudio) pauseMusic(paused bool) {
	if a == nil || a.music == nil {
		return
	}
	speaker.Lock()
	a.music.Paused = paused
	speaker.Unlock()
}

func (a *speakerAudio) stopMusic() {
	if a == nil || a.music == nil {
		return
	}
	speaker.Lock()
	a.music.Streamer = nil
	speaker.Unlock()
	a.music = nil
}

func (a *speakerAudio) close() {
	if a == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}
