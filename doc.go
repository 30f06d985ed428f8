// Package pairviz solves the planar closest-pair problem by divide and
// conquer and turns every solve into a replayable, steppable trace.
//
// 🚀 What is inside?
//
//	geometry/     Point, PairResult, Euclidean distance, brute force, sorting
//	trace/        the Step variants, Recorder sink, read-only Trace, messages
//	closestpair/  the instrumented O(n log² n) solver: Solve, Visualize, Instant
//	playback/     Controller state machine (idle/running/paused/complete),
//	              Loop and ManualScheduler schedulers
//	render/       Scene model, SVG export, colored terminal renderer
//	builder/      deterministic point-set generators (uniform, grid, circle…)
//	config/       YAML settings and zap logger construction
//	vizserver/    HTTP + websocket front end with per-client playback
//	cmd/pairviz   CLI: instant, play, svg and serve modes
//
// ✨ Guarantees
//
//   - Silent and traced solves of the same input return the same pair.
//   - Traces are immutable once frozen; steps share solver-owned storage only.
//   - Stepping backward to k and forward again renders exactly what forward
//     playback rendered at k.
//   - At most one playback tick is ever pending per controller.
//
// Quick look:
//
//	  y
//	  │   •P2        •P5
//	  │       ┆
//	  │ •P1   ┆ •P3•P4        closest: P3 ↔ P4
//	  └───────┼──────────── x
//	        midX
//
//	go get github.com/katalvlaran/pairviz
package pairviz
