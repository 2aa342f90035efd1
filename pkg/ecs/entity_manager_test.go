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

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
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

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testVelocityComponent{VX: 3})

	vel, ok := GetComponent[*testVelocityComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find the component")
	}
	if vel.VX != 3 {
		t.Errorf("Expected VX=3, got %f", vel.VX)
	}

	if _, ok := GetComponent[*testPositionComponent](em, id); ok {
		t.Error("Missing component should not be found")
	}
	if !HasComponent[*testVelocityComponent](em, id) {
		t.Error("HasComponent should report the velocity component")
	}
}

func TestDestroyEntityIsIdempotent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记

	if em.IsAlive(id) {
		t.Error("Entity marked for destruction should not be alive")
	}
	// 清理前组件仍存在
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity components should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}

	// 已删除实体再次销毁是空操作
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities, got %d", em.EntityCount())
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	entities := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("Expected [%d], got %v", id1, entities)
	}

	posEntities := GetEntitiesWith1[*testPositionComponent](em)
	if len(posEntities) != 2 {
		t.Fatalf("Expected 2 entities with Position component, got %d", len(posEntities))
	}
	// 结果按创建顺序排列
	if posEntities[0] != id1 || posEntities[1] != id2 {
		t.Errorf("Expected sorted ids [%d %d], got %v", id1, id2, posEntities)
	}
}

func TestGetEntitiesWithSkipsMarked(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	em.DestroyEntity(id1)

	entities := GetEntitiesWith1[*testPositionComponent](em)
	if len(entities) != 1 || entities[0] != id2 {
		t.Errorf("Marked entity should be skipped, got %v", entities)
	}
}
