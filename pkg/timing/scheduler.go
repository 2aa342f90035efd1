// Package timing 提供基于虚拟时间的定时器调度
//
// 所有延迟行为（打字机节奏、游戏生成间隔、彩纸波次等）都通过 Scheduler 实现。
// Scheduler 不读取真实时钟，而是由场景在每个 tick 调用 Advance(deltaTime) 推进，
// 因此同一输入序列总是得到相同的执行顺序，便于测试。
package timing

import (
	"sort"
)

// TimerID 是定时器句柄，0 保留为无效ID
type TimerID uint64

// timer 单个待执行的定时器
type timer struct {
	id  TimerID
	due float64 // 到期时间（秒，虚拟时钟）
	seq uint64  // 调度顺序，用于同一时刻的稳定排序
	fn  func()
}

// Scheduler 虚拟时间定时器调度器
//
// 单线程使用：所有方法只能在游戏循环线程上调用。
type Scheduler struct {
	now     float64
	nextID  TimerID
	nextSeq uint64
	pending map[TimerID]*timer
}

// NewScheduler 创建一个新的调度器，虚拟时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{
		nextID:  1,
		pending: make(map[TimerID]*timer),
	}
}

// Now 返回当前虚拟时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 delay 秒后执行 fn，返回可用于取消的句柄
// delay 小于 0 时按 0 处理
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	id := s.nextID
	s.nextID++
	s.pending[id] = &timer{
		id:  id,
		due: s.now + delay,
		seq: s.nextSeq,
		fn:  fn,
	}
	s.nextSeq++
	return id
}

// Cancel 取消尚未执行的定时器
// 对已执行或不存在的句柄调用是安全的空操作，返回是否真正取消
func (s *Scheduler) Cancel(id TimerID) bool {
	if _, ok := s.pending[id]; !ok {
		return false
	}
	delete(s.pending, id)
	return true
}

// IsPending 检查定时器是否仍在等待执行
func (s *Scheduler) IsPending(id TimerID) bool {
	_, ok := s.pending[id]
	return ok
}

// PendingCount 返回等待中的定时器数量
func (s *Scheduler) PendingCount() int {
	return len(s.pending)
}

// Advance 推进虚拟时钟 deltaTime 秒，并按到期顺序执行所有到期定时器
//
// 执行顺序：到期时间升序，同一时刻按调度顺序。
// 回调中新调度的定时器如果也在本次窗口内到期，会在本次 Advance 中继续执行，
// 但零延迟的定时器不会在调度它的同一批次中被立即执行（避免自调度死循环）。
func (s *Scheduler) Advance(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	target := s.now + deltaTime
	// 本批次截止的调度序号：之后调度的零延迟定时器留到下一次 Advance
	barrier := s.nextSeq

	for {
		next := s.nextDue(target, barrier)
		if next == nil {
			break
		}
		delete(s.pending, next.id)
		if next.due > s.now {
			s.now = next.due
		}
		next.fn()
	}
	s.now = target
}

// nextDue 找到下一个应执行的定时器
func (s *Scheduler) nextDue(target float64, barrier uint64) *timer {
	var best *timer
	for _, t := range s.pending {
		if t.due > target {
			continue
		}
		// 批次内新调度、且在当前时刻立即到期的定时器推迟到下一批
		if t.seq >= barrier && t.due <= s.now {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Clear 取消所有等待中的定时器
func (s *Scheduler) Clear() {
	s.pending = make(map[TimerID]*timer)
}

// dueOrder 返回按执行顺序排列的等待中定时器句柄（调试用）
func (s *Scheduler) dueOrder() []TimerID {
	list := make([]*timer, 0, len(s.pending))
	for _, t := range s.pending {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].due != list[j].due {
			return list[i].due < list[j].due
		}
		return list[i].seq < list[j].seq
	})
	ids := make([]TimerID, len(list))
	for i, t := range list {
		ids[i] = t.id
	}
	return ids
}
