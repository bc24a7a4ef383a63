// Package trace records what the workspace is doing as nested spans:
// loads and their parse and register phases, module updates, reference
// scan steps and editor requests.
//
// Spans carry the module they work on, its generation and, for requests,
// the cursor offset, so a trace of a slow completion shows which module
// version it ran against:
//
//	asls complete --trace=- --trace-level=debug Script/Player.as 12:8
//
// A Writer tracer prints events as text or NDJSON. It also remembers which
// spans are still open; a Pulse reports them periodically, which makes a
// stuck load visible.
package trace
