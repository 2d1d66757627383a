package gameplay

import "math"

// Status 一局游戏的状态，任意时刻只有一个生效
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
	StatusVictory
)

// String 返回状态名称
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "gameover"
	case StatusVictory:
		return "victory"
	}
	return "unknown"
}

// GameState 一局游戏的状态
// 每局由 Session 新建一个，不是全局单例
type GameState struct {
	Status Status

	Score     int
	Distance  float64 // 行进距离（米），由时间推算，运行期间单调不减
	ElapsedMs float64 // 运行时长（毫秒），暂停期间不计
	Level     int     // 难度等级 0..MaxLevel

	LeechesDefeated int
	ItemsCollected  int
}

// RunResult 结束场景收到的数据
type RunResult struct {
	Score           int
	Distance        int // 米，向下取整
	Time            int // 秒，向下取整
	LeechesDefeated int
	ItemsCollected  int
	Victory         bool
}

// AddScore 增加分数，负数忽略
func (gs *GameState) AddScore(amount int) {
	if amount <= 0 {
		return
	}
	gs.Score += amount
}

// Advance 运行状态下推进时钟和距离
func (gs *GameState) Advance(dtMs, distancePerMs float64) {
	if gs.Status != StatusRunning || dtMs <= 0 {
		return
	}
	gs.ElapsedMs += dtMs
	gs.Distance += dtMs * distancePerMs
}

// IsOver 是否已结束（失败或胜利）
func (gs *GameState) IsOver() bool {
	return gs.Status == StatusGameOver || gs.Status == StatusVictory
}

// Result 生成结束数据
func (gs *GameState) Result() RunResult {
	return RunResult{
		Score:           gs.Score,
		Distance:        int(math.Floor(gs.Distance)),
		Time:            int(math.Floor(gs.ElapsedMs / 1000)),
		LeechesDefeated: gs.LeechesDefeated,
		ItemsCollected:  gs.ItemsCollected,
		Victory:         gs.Status == StatusVictory,
	}
}
