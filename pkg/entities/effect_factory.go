package entities

import (
	"math"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/random"
)

// BurstSpec 粒子爆发参数
type BurstSpec struct {
	Count    int
	SpeedMin float64
	SpeedMax float64
	Gravity  float64
	Lifetime float64 // 秒
	Size     float64
	R, G, B  float64
}

// SaltBurst 盐爆发：白色粒子向四周散开
var SaltBurst = BurstSpec{Count: 30, SpeedMin: 50, SpeedMax: 200, Gravity: 0, Lifetime: 0.8, Size: 3, R: 1, G: 1, B: 1}

// BossExplosion Boss 死亡爆炸
var BossExplosion = BurstSpec{Count: 20, SpeedMin: 0, SpeedMax: 200, Gravity: 300, Lifetime: 1.0, Size: 4, R: 1, G: 0.4, B: 0.1}

// NewParticleBurst 在 (x, y) 生成一组粒子，返回粒子实体ID
func NewParticleBurst(em *ecs.EntityManager, rng *random.PRNG, x, y float64, spec BurstSpec) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		angle := rng.FloatBetween(0, 2*math.Pi)
		speed := rng.FloatBetween(spec.SpeedMin, spec.SpeedMax)
		ids = append(ids, NewParticle(em, x, y, components.ParticleComponent{
			VelocityX:  math.Cos(angle) * speed,
			VelocityY:  math.Sin(angle) * speed,
			Gravity:    spec.Gravity,
			StartScale: 1,
			EndScale:   0,
			Alpha:      1,
			Red:        spec.R,
			Green:      spec.G,
			Blue:       spec.B,
			Size:       spec.Size,
			Lifetime:   spec.Lifetime,
		}))
	}
	return ids
}

// NewParticle 创建单个粒子
func NewParticle(em *ecs.EntityManager, x, y float64, p components.ParticleComponent) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	particle := p
	ecs.AddComponent(em, id, &particle)
	return id
}

// NewCamera 创建跟随目标的摄像机
func NewCamera(em *ecs.EntityManager, target ecs.EntityID, x, y, lerp float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CameraComponent{X: x, Y: y, Target: target, Lerp: lerp})
	return id
}

// TitleDrift 标题画面缓慢上升的萤火
var TitleDrift = components.ParticleComponent{
	VelocityY:  -25,
	StartScale: 1,
	EndScale:   0.3,
	Alpha:      1,
	Red:        0.75,
	Green:      1,
	Blue:       0.55,
	Size:       2,
	Lifetime:   6,
}

// NewParticleEmitter 创建持续发射粒子的发射器
// (x, y) 是发射区域左上角
func NewParticleEmitter(em *ecs.EntityManager, x, y, w, h, rate, spreadVX float64, template components.ParticleComponent) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.ParticleEmitterComponent{
		Rate:       rate,
		AreaWidth:  w,
		AreaHeight: h,
		Template:   template,
		SpreadVX:   spreadVX,
		Active:     true,
	})
	return id
}
