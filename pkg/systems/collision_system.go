package systems

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// collisionCellSize 碰撞空间网格边长（像素）
const collisionCellSize = 32

var layerTags = map[components.CollisionLayer]resolv.Tags{
	components.LayerPlayer:     resolv.NewTag(components.LayerPlayer.String()),
	components.LayerEnemy:      resolv.NewTag(components.LayerEnemy.String()),
	components.LayerItem:       resolv.NewTag(components.LayerItem.String()),
	components.LayerProjectile: resolv.NewTag(components.LayerProjectile.String()),
	components.LayerAttack:     resolv.NewTag(components.LayerAttack.String()),
}

// collisionPairs 需要检测的碰撞对：主动方 → 被检测方
var collisionPairs = []struct {
	From components.CollisionLayer
	To   components.CollisionLayer
}{
	{components.LayerPlayer, components.LayerEnemy},
	{components.LayerAttack, components.LayerEnemy},
	{components.LayerPlayer, components.LayerItem},
	{components.LayerProjectile, components.LayerPlayer},
}

// Contact 一次重叠
type Contact struct {
	A, B           ecs.EntityID
	LayerA, LayerB components.CollisionLayer
}

type trackedShape struct {
	shape         resolv.IShape
	layer         components.CollisionLayer
	left, top     float64
	width, height float64
}

// CollisionSystem 基于 resolv 空间网格的重叠检测
// 每帧先把 CollisionComponent 同步到碰撞空间，再按碰撞对做带标签过滤的相交测试
type CollisionSystem struct {
	ctx    *Context
	space  *resolv.Space
	shapes map[ecs.EntityID]*trackedShape
	owners map[resolv.IShape]ecs.EntityID
}

// NewCollisionSystem 创建覆盖整个世界的碰撞空间
func NewCollisionSystem(ctx *Context) *CollisionSystem {
	return &CollisionSystem{
		ctx:    ctx,
		space:  resolv.NewSpace(int(config.WorldWidth), int(config.WorldHeight), collisionCellSize, collisionCellSize),
		shapes: make(map[ecs.EntityID]*trackedShape),
		owners: make(map[resolv.IShape]ecs.EntityID),
	}
}

// ShapeCount 当前碰撞空间中的形状数量
func (cs *CollisionSystem) ShapeCount() int {
	return len(cs.shapes)
}

// Sync 把实体的碰撞盒同步到碰撞空间
// 已销毁或已标记销毁的实体会被移出空间
func (cs *CollisionSystem) Sync() {
	for id, ts := range cs.shapes {
		if !cs.ctx.Alive(id) || !ecs.HasComponent[*components.CollisionComponent](cs.ctx.EM, id) {
			cs.remove(id, ts)
		}
	}

	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.CollisionComponent](cs.ctx.EM)
	for _, id := range entities {
		if cs.ctx.EM.IsPendingDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](cs.ctx.EM, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](cs.ctx.EM, id)

		left := pos.X + col.OffsetX - col.Width/2
		top := pos.Y + col.OffsetY - col.Height/2

		ts, ok := cs.shapes[id]
		if ok && (ts.width != col.Width || ts.height != col.Height || ts.layer != col.Layer) {
			cs.remove(id, ts)
			ok = false
		}
		if !ok {
			sh := resolv.NewRectangleTopLeft(left, top, col.Width, col.Height)
			sh.Tags().Set(layerTags[col.Layer])
			cs.space.Add(sh)
			cs.shapes[id] = &trackedShape{shape: sh, layer: col.Layer, left: left, top: top, width: col.Width, height: col.Height}
			cs.owners[sh] = id
			continue
		}
		if left != ts.left || top != ts.top {
			ts.shape.Move(left-ts.left, top-ts.top)
			ts.left, ts.top = left, top
		}
	}
}

// Detect 检测所有碰撞对，返回按 (A, B) 排序的接触列表
func (cs *CollisionSystem) Detect() []Contact {
	var contacts []Contact

	ids := make([]ecs.EntityID, 0, len(cs.shapes))
	for id := range cs.shapes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		ts := cs.shapes[id]
		for _, pair := range collisionPairs {
			if pair.From != ts.layer {
				continue
			}
			to := pair.To
			ts.shape.IntersectionTest(resolv.IntersectionTestSettings{
				TestAgainst: ts.shape.SelectTouchingCells(0).FilterShapes().ByTags(layerTags[to]),
				OnIntersect: func(set resolv.IntersectionSet) bool {
					other, ok := cs.owners[set.OtherShape]
					if ok && other != id {
						contacts = append(contacts, Contact{A: id, B: other, LayerA: ts.layer, LayerB: to})
					}
					return true
				},
			})
		}
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		if contacts[i].A != contacts[j].A {
			return contacts[i].A < contacts[j].A
		}
		return contacts[i].B < contacts[j].B
	})
	return contacts
}

// Clear 清空碰撞空间
func (cs *CollisionSystem) Clear() {
	for id, ts := range cs.shapes {
		cs.remove(id, ts)
	}
}

func (cs *CollisionSystem) remove(id ecs.EntityID, ts *trackedShape) {
	cs.space.Remove(ts.shape)
	delete(cs.owners, ts.shape)
	delete(cs.shapes, id)
}
