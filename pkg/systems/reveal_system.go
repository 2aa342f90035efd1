package systems

import (
	"fmt"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/utils"
)

// revealStagger 同一区块内相邻元素的渐显错开时间（秒）
const revealStagger = 0.1

// RevealLayout 返回区块内第 index 个可渐显元素的文档矩形
type RevealLayout func(section, index int) utils.Rect

// RevealSystem 元素首次进入视口时渐显上浮（一次性）
type RevealSystem struct {
	entityManager *ecs.EntityManager
	visibility    *VisibilitySystem
	layout        RevealLayout
}

// NewRevealSystem 创建渐显系统
func NewRevealSystem(em *ecs.EntityManager, visibility *VisibilitySystem, layout RevealLayout) *RevealSystem {
	return &RevealSystem{
		entityManager: em,
		visibility:    visibility,
		layout:        layout,
	}
}

// Add 创建一个可渐显元素并注册可见性观察
func (rs *RevealSystem) Add(section, index int, text string) ecs.EntityID {
	id := rs.entityManager.CreateEntity()
	reveal := &components.RevealComponent{Section: section, Index: index, Text: text}
	ecs.AddComponent(rs.entityManager, id, reveal)

	rs.visibility.Observe(
		fmt.Sprintf("reveal[%d:%d]", section, index),
		func() utils.Rect { return rs.layout(section, index) },
		config.RevealThreshold,
		true,
		func() { reveal.Visible = true },
	)
	return id
}

// Update 推进已触发元素的动画时间
func (rs *RevealSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.RevealComponent](rs.entityManager) {
		reveal, _ := ecs.GetComponent[*components.RevealComponent](rs.entityManager, id)
		if reveal.Visible {
			reveal.Elapsed += deltaTime
		}
	}
}

// InSection 返回某个区块内的渐显元素（按 Index 顺序）
func (rs *RevealSystem) InSection(section int) []*components.RevealComponent {
	var result []*components.RevealComponent
	for _, id := range ecs.GetEntitiesWith1[*components.RevealComponent](rs.entityManager) {
		reveal, _ := ecs.GetComponent[*components.RevealComponent](rs.entityManager, id)
		if reveal.Section == section {
			result = append(result, reveal)
		}
	}
	return result
}

// RevealPose 返回元素当前的透明度与纵向偏移
func RevealPose(r *components.RevealComponent) (alpha, offsetY float64) {
	if !r.Visible {
		return 0, config.RevealOffset
	}
	t := (r.Elapsed - float64(r.Index)*revealStagger) / config.RevealDuration
	t = utils.Clamp01(t)
	eased := utils.EaseOutCubic(t)
	return eased, config.RevealOffset * (1 - eased)
}
