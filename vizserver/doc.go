// Package vizserver serves closest-pair solves and live playback over HTTP.
//
// Routes:
//
//	GET  /healthz     → "ok"
//	POST /api/solve   → silent solve, {"pair":…, "distance":…, "elapsed_ms":…}
//	POST /api/trace   → traced solve, {"steps":[{"kind":…, "data":…}], "result":…}
//	GET  /ws          → websocket playback session
//
// A websocket session owns one playback.Loop and one playback.Controller.
// Every command runs on the loop through Loop.Do and every outgoing frame is
// written from the loop, so the controller and the connection each have a
// single owner goroutine.
//
// Client commands ({"cmd": …}):
//
//	points {points}       replace the point set (resets playback)
//	random {count, seed}  generate a point set (resets playback)
//	start                 solve and play from step 0
//	pause | resume
//	forward | backward    single steps while paused (forward also works from idle)
//	reset
//	speed {speed_ms}
//	instant               silent solve with timing
//
// Server messages ({"type": …}): session, points, apply, replay, state,
// complete, result, error.
//
// Limits: point sets above Options.MaxPoints (config.MaxPointCount by default)
// are refused with ErrTooManyPoints, as an error frame on the websocket and a
// 413 over HTTP. Websocket frames above 1 MiB close the session.
package vizserver
