// leeches-tty 在终端里运行 Forest Leeches
//
// 使用与桌面版相同的无头游戏会话，画面由 tcell 输出为字符，
// 音效由 beep/speaker 直接播放。
//
// 用法:
//
//	leeches-tty [--seed N] [--sound=false] [--config path] [--log file]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/event"
	"github.com/decker502/forestleeches/pkg/gameplay"
	"github.com/decker502/forestleeches/pkg/sfx"
	"github.com/decker502/forestleeches/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

const (
	tickInterval = 16 * time.Millisecond
	stepSeconds  = 1.0 / 60.0
	noticeMs     = 2000.0
	eventBuffer  = 64
)

var (
	seed       = flag.Int64("seed", 0, "随机种子（0 表示每局随机）")
	sound      = flag.Bool("sound", true, "播放音效")
	configPath = flag.String("config", "", "游戏数值配置文件（为空使用默认值）")
	logPath    = flag.String("log", "", "日志文件（为空不输出日志）")
)

// terminal 终端前端的运行状态
type terminal struct {
	screen  tcell.Screen
	audio   *speakerAudio
	cfg     *config.GameConfig
	session *gameplay.Session
	subs    []event.Subscription
	latch   keyLatch
	clockMs float64

	notice      string
	noticeUntil float64
}

func main() {
	flag.Parse()

	closeLog := setupLog(*logPath)
	defer closeLog()

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLog(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }
}

func run(cfg *config.GameConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	t := &terminal{screen: screen, cfg: cfg}
	if *sound {
		a, err := newSpeakerAudio()
		if err != nil {
			log.Printf("[tty] Warning: %v (sound disabled)", err)
		} else {
			t.audio = a
			defer a.close()
		}
	}
	if err := t.newRun(); err != nil {
		return err
	}
	defer t.dispose()

	done := make(chan struct{})
	defer close(done)
	events, _ := pollEvents(screen, done, eventBuffer)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quit, err := t.handleKey(ev); quit || err != nil {
					return err
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			t.step()
			t.draw()
		}
	}
}

// pollEvents 在独立 goroutine 中读取终端事件
// done 关闭或屏幕 Fini 后 goroutine 退出，随后 stopped 被关闭
func pollEvents(screen tcell.Screen, done <-chan struct{}, buffer int) (events <-chan tcell.Event, stopped <-chan struct{}) {
	ch := make(chan tcell.Event, buffer)
	exit := make(chan struct{})
	go func() {
		defer close(exit)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case ch <- ev:
			case <-done:
				return
			}
		}
	}()
	return ch, exit
}

// newRun 开始新的一局
func (t *terminal) newRun() error {
	t.dispose()
	session, err := gameplay.NewSession(t.cfg, *seed)
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}
	t.session = session
	t.latch = keyLatch{}
	t.notice = ""
	t.subscribe()
	t.audio.startMusic()
	return nil
}

func (t *terminal) dispose() {
	if t.session == nil {
		return
	}
	for _, sub := range t.subs {
		t.session.Events().Unsubscribe(sub)
	}
	t.subs = nil
	t.audio.stopMusic()
}

func (t *terminal) subscribe() {
	on := func(et event.EventType, fn func(event.Event)) {
		t.subs = append(t.subs, t.session.Events().SubscribeFunc(et, fn))
	}
	play := func(id sfx.SoundID) func(event.Event) {
		return func(event.Event) { t.audio.play(id) }
	}

	on(systems.EventPlayerJumped, play(sfx.SoundJump))
	on(systems.EventPlayerAttacked, play(sfx.SoundAttack))
	on(systems.EventPlayerHit, play(sfx.SoundHit))
	on(systems.EventSaltBurst, play(sfx.SoundExplosion))
	on(systems.EventEnemyDied, func(e event.Event) {
		if died, ok := e.Data.(systems.EnemyDiedEvent); ok && died.Cause == components.DeathKilled {
			t.audio.play(sfx.SoundHit)
		}
	})
	on(systems.EventItemCollected, func(e event.Event) {
		item, ok := e.Data.(systems.ItemEvent)
		if !ok {
			return
		}
		if item.Kind == components.ItemStick {
			t.audio.play(sfx.SoundPickup)
		} else {
			t.audio.play(sfx.SoundPowerup)
		}
		t.notify(item.Text)
	})
	on(systems.EventBossSpawned, func(event.Event) { t.notify("THE LEECH KING APPEARS!") })
	on(gameplay.EventDifficultyIncreased, func(event.Event) { t.notify("DIFFICULTY INCREASED!") })
	on(gameplay.EventPauseChanged, func(event.Event) { t.audio.pauseMusic(t.session.IsPaused()) })
	on(gameplay.EventGameOver, func(event.Event) {
		t.audio.stopMusic()
		t.audio.play(sfx.SoundGameOver)
	})
	on(gameplay.EventVictory, func(event.Event) {
		t.audio.stopMusic()
		t.audio.play(sfx.SoundVictory)
	})
}

func (t *terminal) notify(text string) {
	if text == "" {
		return
	}
	t.notice = text
	t.noticeUntil = t.clockMs + noticeMs
}

// handleKey 返回 true 表示退出
func (t *terminal) handleKey(ev *tcell.EventKey) (bool, error) {
	if isQuit(ev) {
		return true, nil
	}
	if t.session.Finished() {
		if isRetry(ev) {
			return false, t.newRun()
		}
		return false, nil
	}
	if a, ok := keyAction(ev); ok {
		t.latch.press(a, t.clockMs)
	}
	return false, nil
}

func (t *terminal) step() {
	t.clockMs += stepSeconds * 1000
	t.session.Update(t.latch.state(t.clockMs), stepSeconds)
	if t.notice != "" && t.clockMs >= t.noticeUntil {
		t.notice = ""
	}
}

func (t *terminal) draw() {
	w, h := t.screen.Size()
	blit(t.screen, composeFrame(t.session, w, h, t.notice))
	t.screen.Show()
}

// blit 把字符画面写入屏幕
func blit(screen tcell.Screen, f *frame) {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			c := f.cells[y*f.w+x]
			screen.SetContent(x, y, c.ch, nil, c.style)
		}
	}
}
