package systems

import (
	"testing"

	"github.com/gonewx/valentine/pkg/components"
	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/ecs"
	"github.com/gonewx/valentine/pkg/utils"
)

// TestRevealTriggersOnceWhenVisible 测试元素进入视口后渐显且只触发一次
func TestRevealTriggersOnceWhenVisible(t *testing.T) {
	em := ecs.NewEntityManager()
	vis := NewVisibilitySystem()
	layout := func(section, index int) utils.Rect {
		return utils.Rect{X: 100, Y: float64(section)*600 + 100 + float64(index)*80, W: 400, H: 60}
	}
	rs := NewRevealSystem(em, vis, layout)
	id := rs.Add(config.SectionReasons, 0, "Your laugh")
	reveal, _ := ecs.GetComponent[*components.RevealComponent](em, id)

	vis.Update(utils.Rect{W: 800, H: 600})
	if reveal.Visible {
		t.Fatal("Card should stay hidden while off screen")
	}
	alpha, offset := RevealPose(reveal)
	if alpha != 0 || offset != config.RevealOffset {
		t.Errorf("Hidden card pose should be (0, %v), got (%v, %v)", config.RevealOffset, alpha, offset)
	}

	vis.Update(utils.Rect{Y: 1200, W: 800, H: 600})
	if !reveal.Visible {
		t.Fatal("Card should reveal once visible")
	}
	if vis.Count() != 0 {
		t.Error("Reveal observers are one-shot")
	}

	rs.Update(config.RevealDuration)
	alpha, offset = RevealPose(reveal)
	if alpha != 1 || offset != 0 {
		t.Errorf("Reveal should complete after its duration, got (%v, %v)", alpha, offset)
	}
}

// TestRevealStaggersByIndex 测试同一区块内按顺序错开
func TestRevealStaggersByIndex(t *testing.T) {
	first := &components.RevealComponent{Index: 0, Visible: true, Elapsed: 0.2}
	second := &components.RevealComponent{Index: 2, Visible: true, Elapsed: 0.2}
	a1, _ := RevealPose(first)
	a2, _ := RevealPose(second)
	if a1 <= a2 {
		t.Errorf("Later cards should lag behind: %v <= %v", a1, a2)
	}
	if a2 != 0 {
		t.Errorf("Card with index 2 should not start before 0.2s, alpha=%v", a2)
	}
}
