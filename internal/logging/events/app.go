package events

import "github.com/atomicstack/bootmenu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Choice(title, tag, volume string) {
	logging.Trace("app.choice", map[string]interface{}{"title": title, "tag": tag, "volume": volume})
}
