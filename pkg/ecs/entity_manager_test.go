package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

type testHealthComponent struct {
	Current int
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始，0保留为 InvalidEntity
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}
	if em.Exists(InvalidEntity) {
		t.Error("InvalidEntity should never exist")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	t.Run("AddComponent 与 GetComponent 类型一致", func(t *testing.T) {
		AddComponent(em, id, &testPositionComponent{X: 1, Y: 2})
		pos, ok := GetComponent[*testPositionComponent](em, id)
		if !ok || pos.X != 1 || pos.Y != 2 {
			t.Fatalf("GetComponent returned %+v, %v", pos, ok)
		}
		// 反射版本也能读到泛型写入的组件
		if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
			t.Error("reflect lookup should see generic insert")
		}
	})

	t.Run("缺失组件返回零值", func(t *testing.T) {
		vel, ok := GetComponent[*testVelocityComponent](em, id)
		if ok || vel != nil {
			t.Errorf("expected nil/false, got %v/%v", vel, ok)
		}
	})

	t.Run("RemoveComponent", func(t *testing.T) {
		AddComponent(em, id, &testHealthComponent{Current: 3})
		if !HasComponent[*testHealthComponent](em, id) {
			t.Fatal("health should be present")
		}
		RemoveComponent[*testHealthComponent](em, id)
		if HasComponent[*testHealthComponent](em, id) {
			t.Error("health should be removed")
		}
	})

	t.Run("不存在的实体", func(t *testing.T) {
		AddComponent(em, 999, &testPositionComponent{})
		if HasComponent[*testPositionComponent](em, 999) {
			t.Error("adding to a missing entity must be a no-op")
		}
	})
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记

	// 清理前实体仍存在
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsPendingDestroy(id) {
		t.Error("Entity should be marked for destruction")
	}

	removed := em.RemoveMarkedEntities()
	if len(removed) != 1 || removed[0] != id {
		t.Errorf("Expected [%d] removed, got %v", id, removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsPendingDestroy(id) {
		t.Error("pending flag should be cleared after cleanup")
	}
	if again := em.RemoveMarkedEntities(); again != nil {
		t.Errorf("second cleanup should remove nothing, got %v", again)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{})
	AddComponent(em, id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	AddComponent(em, id3, &testVelocityComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected [id1], got %v", both)
	}

	positions := GetEntitiesWith1[*testPositionComponent](em)
	if len(positions) != 2 {
		t.Fatalf("Expected 2 entities with position, got %d", len(positions))
	}
	// 结果按ID升序
	if positions[0] != id1 || positions[1] != id2 {
		t.Errorf("Expected ordered [%d %d], got %v", id1, id2, positions)
	}

	none := GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, *testHealthComponent](em)
	if len(none) != 0 {
		t.Errorf("Expected no entities, got %v", none)
	}
}

func TestEntityCount(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 5; i++ {
		em.CreateEntity()
	}
	em.DestroyEntity(3)
	em.RemoveMarkedEntities()
	if em.EntityCount() != 4 {
		t.Errorf("Expected 4 entities, got %d", em.EntityCount())
	}
}

func BenchmarkGetEntitiesWith_Generic(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 1000; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	}
}
