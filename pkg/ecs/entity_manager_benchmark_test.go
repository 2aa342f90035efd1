package ecs

import (
	"reflect"
	"testing"
)

// ========== 测试组件定义 ==========

// 与页面上的漂浮装饰相似的负载：每帧查询并推进寿命
type benchDecoration struct {
	XPercent, YPercent float64
	Size               float64
}

type benchLifetime struct {
	Current, Max float64
	Expired      bool
}

type benchTarget struct {
	X, Age float64
	Caught bool
}

// setupBenchmarkEntities 创建 count 个装饰实体，每隔 4 个附加一个下落目标
func setupBenchmarkEntities(count int) *EntityManager {
	em := NewEntityManager()
	for i := 0; i < count; i++ {
		entity := em.CreateEntity()
		em.AddComponent(entity, &benchDecoration{XPercent: float64(i % 100), Size: 24})
		em.AddComponent(entity, &benchLifetime{Max: 14})
		if i%4 == 0 {
			em.AddComponent(entity, &benchTarget{X: float64(i)})
		}
	}
	return em
}

// ========== 查询（反射 vs 泛型）==========

func BenchmarkGetEntitiesWith_Reflection(b *testing.B) {
	em := setupBenchmarkEntities(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = em.GetEntitiesWith(reflect.TypeOf(&benchDecoration{}), reflect.TypeOf(&benchLifetime{}))
	}
}

func BenchmarkGetEntitiesWith_Generic(b *testing.B) {
	em := setupBenchmarkEntities(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*benchDecoration, *benchLifetime](em)
	}
}

func BenchmarkGetEntitiesWith_Generic_Sparse(b *testing.B) {
	em := setupBenchmarkEntities(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith1[*benchTarget](em)
	}
}

// ========== 获取组件 ==========

func BenchmarkGetComponent_Reflection(b *testing.B) {
	em := setupBenchmarkEntities(100)
	entity := EntityID(50)
	typ := reflect.TypeOf(&benchLifetime{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = em.GetComponent(entity, typ)
	}
}

func BenchmarkGetComponent_Generic(b *testing.B) {
	em := setupBenchmarkEntities(100)
	entity := EntityID(50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = GetComponent[*benchLifetime](em, entity)
	}
}

// ========== 模拟一帧的寿命推进与移除 ==========

// BenchmarkLifetimeFrame 推进寿命、标记到期实体并统一移除
func BenchmarkLifetimeFrame(b *testing.B) {
	em := setupBenchmarkEntities(500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, entity := range GetEntitiesWith2[*benchDecoration, *benchLifetime](em) {
			lifetime, ok := GetComponent[*benchLifetime](em, entity)
			if !ok {
				continue
			}
			lifetime.Current += 1.0 / 60
			if lifetime.Current >= lifetime.Max {
				lifetime.Expired = true
				em.DestroyEntity(entity)
			}
		}
		em.RemoveMarkedEntities()
	}
}

// TestGenericAndReflectionQueriesAgree 泛型查询与反射查询结果一致
func TestGenericAndReflectionQueriesAgree(t *testing.T) {
	em := setupBenchmarkEntities(200)

	reflected := em.GetEntitiesWith(reflect.TypeOf(&benchDecoration{}), reflect.TypeOf(&benchLifetime{}))
	generic := GetEntitiesWith2[*benchDecoration, *benchLifetime](em)
	if len(reflected) != 200 || len(generic) != 200 {
		t.Fatalf("Expected 200 entities, got reflection=%d generic=%d", len(reflected), len(generic))
	}

	targets := GetEntitiesWith1[*benchTarget](em)
	if len(targets) != 50 {
		t.Errorf("Expected 50 targets, got %d", len(targets))
	}
	for _, id := range targets {
		if !HasComponent[*benchDecoration](em, id) {
			t.Errorf("Target %d should also carry a decoration", id)
		}
	}
}
