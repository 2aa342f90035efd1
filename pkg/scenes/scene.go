package scenes

import (
	"github.com/gonewx/valentine/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene          = (*GreetingScene)(nil)
	_ game.Resizable = (*GreetingScene)(nil)
	_ game.Exitable  = (*GreetingScene)(nil)
)
