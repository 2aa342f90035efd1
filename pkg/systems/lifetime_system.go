package systems

import (
	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/ecs"
)

// LifetimeSystem 推进实体寿命，到期即标记删除
// 漂浮爱心和闪光依赖它完成"生成时即安排好移除"
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	expired       int
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
			s.expired++
		}
	}
}

// ExpiredCount 返回累计移除的实体数
func (s *LifetimeSystem) ExpiredCount() int {
	return s.expired
}
