package renderers

import (
	"github.com/lixenwraith/git-conflict/render"
	"github.com/lixenwraith/git-conflict/status"
)

// RegisterAll installs the terminal frontend's layers in draw order
func RegisterAll(o *render.RenderOrchestrator, registry *status.Registry) {
	o.Register(NewMenuRenderer(), render.PriorityBackground)
	o.Register(NewGridRenderer(), render.PriorityGrid)
	o.Register(NewHUDRenderer(), render.PriorityUI)
	o.Register(NewConflictRenderer(), render.PriorityOverlay)
	o.Register(NewEditorRenderer(), render.PriorityOverlay)
	o.Register(NewEndRenderer(), render.PriorityOverlay)
	o.Register(NewNoticeRenderer(), render.PriorityNotice)
	o.Register(NewDebugRenderer(registry), render.PriorityDebug)
}
