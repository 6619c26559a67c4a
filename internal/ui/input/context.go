package input

import (
	"pathviz/internal/controller"
)

// ModelContext implements types.Context over the lifecycle controller
type ModelContext struct {
	Controller *controller.Controller
}

func (c *ModelContext) LifecycleState() controller.State {
	return c.Controller.State()
}

func (c *ModelContext) Can(ev controller.Event) bool {
	return c.Controller.Can(ev)
}
