package systems

import (
	"log"
	"sort"

	"github.com/gonewx/valentine/pkg/utils"
)

// ObserverID 观察者标识
type ObserverID uint64

// RectFunc 返回被观察对象当前在文档坐标中的矩形
// 布局随窗口尺寸变化，因此每次检查时重新计算
type RectFunc func() utils.Rect

type observer struct {
	id        ObserverID
	name      string
	target    RectFunc
	threshold float64
	once      bool
	callback  func()
	visible   bool
}

// VisibilitySystem 视口可见性触发器
//
// 每次 Update 计算所有被观察矩形在视口中的可见比例；
// 从"不可见"变为"可见比例 >= 阈值"时触发回调。
// 回调在本次 Update 的状态更新全部完成后统一派发，不在滚动调用中同步执行。
// 一次性观察者触发后自动注销；重复观察者在下一次进入视口时再次触发。
type VisibilitySystem struct {
	observers map[ObserverID]*observer
	nextID    ObserverID
}

// NewVisibilitySystem 创建可见性系统
func NewVisibilitySystem() *VisibilitySystem {
	return &VisibilitySystem{
		observers: make(map[ObserverID]*observer),
		nextID:    1,
	}
}

// Observe 注册观察者，返回可用于注销的 ID
func (vs *VisibilitySystem) Observe(name string, target RectFunc, threshold float64, once bool, callback func()) ObserverID {
	id := vs.nextID
	vs.nextID++
	vs.observers[id] = &observer{
		id:        id,
		name:      name,
		target:    target,
		threshold: threshold,
		once:      once,
		callback:  callback,
	}
	return id
}

// Unobserve 注销观察者，未知 ID 是空操作
func (vs *VisibilitySystem) Unobserve(id ObserverID) {
	delete(vs.observers, id)
}

// IsObserving 观察者是否仍然注册
func (vs *VisibilitySystem) IsObserving(id ObserverID) bool {
	_, ok := vs.observers[id]
	return ok
}

// Count 返回注册中的观察者数量
func (vs *VisibilitySystem) Count() int {
	return len(vs.observers)
}

// Update 以当前视口检查所有观察者
func (vs *VisibilitySystem) Update(viewport utils.Rect) {
	ids := make([]ObserverID, 0, len(vs.observers))
	for id := range vs.observers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var fired []func()
	for _, id := range ids {
		obs := vs.observers[id]
		fraction := obs.target().VisibleFraction(viewport)
		nowVisible := fraction > 0 && fraction >= obs.threshold

		if nowVisible && !obs.visible {
			log.Printf("[VisibilitySystem] %s entered viewport (%.2f >= %.2f)", obs.name, fraction, obs.threshold)
			if obs.callback != nil {
				fired = append(fired, obs.callback)
			}
			if obs.once {
				delete(vs.observers, id)
				continue
			}
		}
		obs.visible = nowVisible
	}

	for _, cb := range fired {
		cb()
	}
}
