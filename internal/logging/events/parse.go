package events

import "github.com/atomicstack/bootmenu/internal/logging"

type ParseTracer struct{}

var Parse = ParseTracer{}

func (ParseTracer) Directive(file string, line int, name string, tokens int) {
	logging.Trace("parse.directive", map[string]interface{}{"file": file, "line": line, "directive": name, "tokens": tokens})
}

func (ParseTracer) Include(from, name string, depth int) {
	logging.Trace("parse.include", map[string]interface{}{"from": from, "file": name, "depth": depth})
}

func (ParseTracer) Entry(file, title string, submenus int) {
	logging.Trace("parse.entry", map[string]interface{}{"file": file, "title": title, "submenus": submenus})
}

func (ParseTracer) Diagnostic(file string, line int, kind, message string) {
	logging.Trace("parse.diagnostic", map[string]interface{}{"file": file, "line": line, "kind": kind, "message": message})
}
