// Package sfx 用 beep 合成游戏音效和背景音乐
//
// 所有声音在启动时合成一次并渲染成 PCM，交给 Ebitengine 的音频上下文播放，
// 因此不需要任何音频资源文件。
package sfx

import (
	"math"
	"time"

	"github.com/decker502/forestleeches/pkg/random"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave 振荡器波形
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// oscillator 生成单一波形，频率可以在时长内线性滑动
type oscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64
	position  int
	total     int
	wave      Wave
	rate      beep.SampleRate
	rng       *random.PRNG
}

// newOscillator 创建振荡器
// 参数：
//   - freq, endFreq: 起止频率（Hz），相同则为固定音高
//   - d: 时长
//   - rng: 噪声波形使用的随机源，固定种子保证每次合成结果一致
func newOscillator(freq, endFreq float64, d time.Duration, wave Wave, rate beep.SampleRate, rng *random.PRNG) *oscillator {
	return &oscillator{
		startFreq: freq,
		endFreq:   endFreq,
		total:     rate.N(d),
		wave:      wave,
		rate:      rate,
		rng:       rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.total)
		freq := o.startFreq + (o.endFreq-o.startFreq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 简化的 ADSR：只有起音和释音
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// tone 一个带包络的音符
type tone struct {
	freq, endFreq float64
	dur           time.Duration
	attack        time.Duration
	release       time.Duration
	wave          Wave
	gain          float64
}

func (t tone) streamer(rate beep.SampleRate, rng *random.PRNG) beep.Streamer {
	end := t.endFreq
	if end == 0 {
		end = t.freq
	}
	osc := newOscillator(t.freq, end, t.dur, t.wave, rate, rng)
	return withVolume(newEnvelope(osc, t.dur, t.attack, t.release, rate), t.gain)
}

// withVolume 线性音量转 beep 的对数音量，0 为静音
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// rest 一段静音
func rest(rate beep.SampleRate, d time.Duration) beep.Streamer {
	return beep.Silence(rate.N(d))
}

// noteFreq 十二平均律，semitone 相对 A4
func noteFreq(semitone int) float64 {
	return 440 * math.Pow(2, float64(semitone)/12)
}
