package game

import (
	"errors"
	"log"

	"github.com/decker502/forestleeches/pkg/gameplay"
	"github.com/hajimehoshi/ebiten/v2"
)

var errNoFactory = errors.New("scene factory not set")

// RunResult 传给结算场景的数据
type RunResult = gameplay.RunResult

// SceneFactory 场景工厂函数类型
// 按ID创建场景，result 仅对结算场景有意义；场景包注册工厂以避免循环依赖
type SceneFactory func(id SceneID, result RunResult) (Scene, error)

// SceneManager 管理当前活动场景
//
// 场景切换在帧末生效：场景在自己的 Update 中请求切换时，
// 本帧剩余逻辑仍作用在旧场景上，下一帧才由新场景接管。
type SceneManager struct {
	currentScene Scene
	currentID    SceneID
	sceneFactory SceneFactory

	pending   bool
	pendingID SceneID
	pendingRR RunResult
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 立即切换到指定场景实例
func (sm *SceneManager) SwitchTo(id SceneID, scene Scene) {
	if d, ok := sm.currentScene.(Disposable); ok && sm.currentScene != scene {
		d.Dispose()
	}
	sm.currentScene = scene
	sm.currentID = id
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentID 当前场景ID
func (sm *SceneManager) CurrentID() SceneID {
	return sm.currentID
}

// Request 请求在本帧结束后切换场景
//
// 参数：
//   - id: 目标场景
//   - result: 上一局的结算数据（非结算场景传零值）
func (sm *SceneManager) Request(id SceneID, result RunResult) {
	sm.pending = true
	sm.pendingID = id
	sm.pendingRR = result
}

// Load 立即通过工厂创建并切换场景
func (sm *SceneManager) Load(id SceneID, result RunResult) error {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return errNoFactory
	}
	scene, err := sm.sceneFactory(id, result)
	if err != nil {
		log.Printf("[SceneManager] 错误: 无法创建场景 %s: %v", id, err)
		return err
	}
	sm.SwitchTo(id, scene)
	log.Printf("[SceneManager] 切换到场景: %s", id)
	return nil
}

// Update 更新当前场景，然后处理挂起的切换请求
func (sm *SceneManager) Update(deltaTime float64) error {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
	if !sm.pending {
		return nil
	}
	sm.pending = false
	return sm.Load(sm.pendingID, sm.pendingRR)
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
