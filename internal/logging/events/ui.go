package events

import "github.com/atomicstack/tmux-bulk-actions/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) ListCursor(cursor int, id string) {
	logging.Trace("list.cursor", map[string]interface{}{"cursor": cursor, "id": id})
}

func (UITracer) Selection(mode string, selected int) {
	logging.Trace("list.selection", map[string]interface{}{"mode": mode, "selected": selected})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Changed(filter string, matches int) {
	logging.Trace("filter.change", map[string]interface{}{"filter": filter, "matches": matches})
}

func (CommandTracer) Queue(id string, targets []string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "targets": targets})
}

func (CommandTracer) Skip(id, reason string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "reason": reason})
}

func (CommandTracer) NoOp(id string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id})
}

func (CommandTracer) Result(id, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "msg": msgType})
}
