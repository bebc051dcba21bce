package events

import "github.com/atomicstack/tmux-bulk-actions/internal/logging"

type BarTracer struct{}

type OverflowTracer struct{}

type LayoutTracer struct{}

var (
	Bar      = BarTracer{}
	Overflow = OverflowTracer{}
	Layout   = LayoutTracer{}
)

// Measure records an off-screen measurement pass.
func (BarTracer) Measure(listID string, widths []int, disclosure, container int) {
	logging.Trace("bar.measure", map[string]interface{}{
		"list":       listID,
		"widths":     widths,
		"disclosure": disclosure,
		"container":  container,
	})
}

func (BarTracer) Allocate(listID string, visible, hidden []int) {
	logging.Trace("bar.allocate", map[string]interface{}{
		"list":    listID,
		"visible": visible,
		"hidden":  hidden,
	})
}

// Discard records a measurement that was rejected: stale identity, an
// unmeasured container or unchanged inputs.
func (BarTracer) Discard(listID, current string) {
	logging.Trace("bar.discard", map[string]interface{}{"list": listID, "current": current})
}

func (BarTracer) Identity(listID string, count int, changed bool) {
	logging.Trace("bar.identity", map[string]interface{}{"list": listID, "count": count, "changed": changed})
}

func (BarTracer) Focus(index int, id string) {
	logging.Trace("bar.focus", map[string]interface{}{"index": index, "id": id})
}

func (OverflowTracer) Open(title string, items int) {
	logging.Trace("overflow.open", map[string]interface{}{"title": title, "items": items})
}

func (OverflowTracer) Close(title string) {
	logging.Trace("overflow.close", map[string]interface{}{"title": title})
}

func (OverflowTracer) Select(title, id string) {
	logging.Trace("overflow.select", map[string]interface{}{"title": title, "id": id})
}

func (LayoutTracer) Reload(path string, promoted, secondary int) {
	logging.Trace("layout.reload", map[string]interface{}{"path": path, "promoted": promoted, "secondary": secondary})
}

func (LayoutTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("layout.error", map[string]interface{}{"path": path, "error": err.Error()})
}
