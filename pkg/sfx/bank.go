package sfx

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/decker502/forestleeches/pkg/random"
	"github.com/gopxl/beep"
)

// SampleRate 与 Ebitengine 音频上下文一致
const SampleRate = 48000

// maxSoundDuration 单个声音渲染的上限，防止流意外不结束
const maxSoundDuration = 30 * time.Second

// SoundID 声音标识
type SoundID string

const (
	SoundBGM       SoundID = "bgm"
	SoundJump      SoundID = "jump"
	SoundAttack    SoundID = "attack"
	SoundHit       SoundID = "hit"
	SoundPickup    SoundID = "pickup"
	SoundPowerup   SoundID = "powerup"
	SoundExplosion SoundID = "explosion"
	SoundGameOver  SoundID = "gameover"
	SoundVictory   SoundID = "victory"
)

// AllSounds 声音库中的全部声音
var AllSounds = []SoundID{
	SoundBGM, SoundJump, SoundAttack, SoundHit, SoundPickup,
	SoundPowerup, SoundExplosion, SoundGameOver, SoundVictory,
}

// noiseSeed 噪声波形的固定种子
const noiseSeed = 20250101

const restNote = math.MinInt32

// Synthesize 构造指定声音的 beep 流
// 返回的流有限长，可以直接 Render
func Synthesize(id SoundID, rate beep.SampleRate) (beep.Streamer, error) {
	rng := random.New(noiseSeed)
	ms := time.Millisecond

	switch id {
	case SoundJump:
		return tone{freq: 300, endFreq: 620, dur: 120 * ms, attack: 5 * ms, release: 60 * ms, wave: WaveSquare, gain: 0.35}.streamer(rate, rng), nil

	case SoundAttack:
		return beep.Mix(
			tone{dur: 90 * ms, attack: 2 * ms, release: 70 * ms, wave: WaveNoise, gain: 0.3}.streamer(rate, rng),
			tone{freq: 220, endFreq: 110, dur: 90 * ms, attack: 2 * ms, release: 60 * ms, wave: WaveSaw, gain: 0.25}.streamer(rate, rng),
		), nil

	case SoundHit:
		return tone{freq: 180, endFreq: 70, dur: 160 * ms, attack: 2 * ms, release: 100 * ms, wave: WaveSquare, gain: 0.4}.streamer(rate, rng), nil

	case SoundPickup:
		return beep.Seq(
			tone{freq: noteFreq(14), dur: 70 * ms, attack: 2 * ms, release: 20 * ms, wave: WaveSquare, gain: 0.3}.streamer(rate, rng),
			tone{freq: noteFreq(19), dur: 160 * ms, attack: 2 * ms, release: 120 * ms, wave: WaveSquare, gain: 0.3}.streamer(rate, rng),
		), nil

	case SoundPowerup:
		return arpeggio(rate, rng, []int{3, 7, 10, 15, 19}, 70*ms, WaveTriangle, 0.45), nil

	case SoundExplosion:
		return beep.Mix(
			tone{dur: 600 * ms, attack: 5 * ms, release: 500 * ms, wave: WaveNoise, gain: 0.5}.streamer(rate, rng),
			tone{freq: 110, endFreq: 35, dur: 500 * ms, attack: 5 * ms, release: 350 * ms, wave: WaveSine, gain: 0.6}.streamer(rate, rng),
		), nil

	case SoundGameOver:
		return beep.Seq(
			arpeggio(rate, rng, []int{-2, -5, -9}, 280*ms, WaveSaw, 0.25),
			tone{freq: noteFreq(-14), endFreq: noteFreq(-15), dur: 900 * ms, attack: 10 * ms, release: 700 * ms, wave: WaveSaw, gain: 0.25}.streamer(rate, rng),
		), nil

	case SoundVictory:
		return beep.Seq(
			arpeggio(rate, rng, []int{3, 7, 10}, 140*ms, WaveSquare, 0.25),
			tone{freq: noteFreq(15), dur: 800 * ms, attack: 5 * ms, release: 500 * ms, wave: WaveSquare, gain: 0.25}.streamer(rate, rng),
		), nil

	case SoundBGM:
		return backgroundMusic(rate, rng), nil
	}
	return nil, fmt.Errorf("unknown sound: %s", id)
}

// arpeggio 依次演奏一组音符
func arpeggio(rate beep.SampleRate, rng *random.PRNG, semitones []int, step time.Duration, wave Wave, gain float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(semitones))
	for _, s := range semitones {
		notes = append(notes, tone{
			freq: noteFreq(s), dur: step,
			attack: 3 * time.Millisecond, release: step / 2,
			wave: wave, gain: gain,
		}.streamer(rate, rng))
	}
	return beep.Seq(notes...)
}

// 背景音乐：A 小调，八分音符，两声部
var (
	bgmLead = []int{
		0, 3, 7, 3, 5, 3, 0, restNote,
		-2, 2, 5, 2, 3, 2, -2, restNote,
		0, 3, 7, 10, 8, 7, 5, 3,
		2, 3, 5, 3, 0, restNote, 0, restNote,
	}
	bgmBass = []int{-24, -24, -26, -26, -24, -24, -28, -24}
)

const bgmStep = 200 * time.Millisecond

// backgroundMusic 一段可以无缝循环的旋律
func backgroundMusic(rate beep.SampleRate, rng *random.PRNG) beep.Streamer {
	lead := make([]beep.Streamer, 0, len(bgmLead))
	for _, n := range bgmLead {
		if n == restNote {
			lead = append(lead, rest(rate, bgmStep))
			continue
		}
		lead = append(lead, tone{
			freq: noteFreq(n), dur: bgmStep,
			attack: 5 * time.Millisecond, release: 120 * time.Millisecond,
			wave: WaveSquare, gain: 0.12,
		}.streamer(rate, rng))
	}

	barLen := bgmStep * time.Duration(len(bgmLead)/len(bgmBass))
	bass := make([]beep.Streamer, 0, len(bgmBass))
	for _, n := range bgmBass {
		bass = append(bass, tone{
			freq: noteFreq(n), dur: barLen,
			attack: 10 * time.Millisecond, release: 200 * time.Millisecond,
			wave: WaveTriangle, gain: 0.3,
		}.streamer(rate, rng))
	}

	return beep.Mix(beep.Seq(lead...), beep.Seq(bass...))
}

// Render 把流渲染为 16 位小端立体声 PCM（Ebitengine 音频格式）
func Render(s beep.Streamer, rate beep.SampleRate) []byte {
	s = beep.Take(rate.N(maxSoundDuration), s)

	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][1])))
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}

// Bank 预渲染的声音库
type Bank struct {
	rate beep.SampleRate
	pcm  map[SoundID][]byte
}

// NewBank 合成并渲染全部声音
func NewBank() (*Bank, error) {
	b := &Bank{
		rate: beep.SampleRate(SampleRate),
		pcm:  make(map[SoundID][]byte, len(AllSounds)),
	}
	start := time.Now()
	for _, id := range AllSounds {
		s, err := Synthesize(id, b.rate)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize %s: %w", id, err)
		}
		b.pcm[id] = Render(s, b.rate)
	}
	log.Printf("[sfx] rendered %d sounds in %v", len(b.pcm), time.Since(start))
	return b, nil
}

// PCM 返回声音的 PCM 数据
func (b *Bank) PCM(id SoundID) ([]byte, bool) {
	data, ok := b.pcm[id]
	return data, ok
}

// Duration 声音时长
func (b *Bank) Duration(id SoundID) time.Duration {
	data, ok := b.pcm[id]
	if !ok {
		return 0
	}
	frames := len(data) / 4
	return b.rate.D(frames)
}
