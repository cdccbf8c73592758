package events

import "github.com/atomicstack/bootmenu/internal/logging"

type UITracer struct{}

type InputTracer struct{}

var (
	UI    = UITracer{}
	Input = InputTracer{}
)

func (UITracer) MenuCursor(screen string, movement string, current, first, last int) {
	logging.Trace("menu.cursor", map[string]interface{}{
		"screen":   screen,
		"movement": movement,
		"current":  current,
		"first":    first,
		"last":     last,
	})
}

func (UITracer) MenuExit(screen, exit string, index int) {
	logging.Trace("menu.exit", map[string]interface{}{"screen": screen, "exit": exit, "index": index})
}

func (UITracer) Timeout(screen string, seconds int) {
	logging.Trace("menu.timeout", map[string]interface{}{"screen": screen, "seconds": seconds})
}

func (UITracer) Screensaver(screen string, blank bool) {
	logging.Trace("menu.screensaver", map[string]interface{}{"screen": screen, "blank": blank})
}

func (UITracer) Edit(title string, accepted bool) {
	logging.Trace("menu.edit", map[string]interface{}{"title": title, "accepted": accepted})
}

func (InputTracer) Key(source, key string) {
	logging.Trace("input.key", map[string]interface{}{"source": source, "key": key})
}
