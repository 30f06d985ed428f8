// Package render turns a closest-pair trace into something a person can look at.
//
// 🎨 What is here?
//
//   - Scene: a retained-mode model of the visualization. It implements
//     playback.Renderer: Apply folds one step into the model, Replay clears it
//     and folds a prefix. Replaying trace[0:k] always yields exactly the state
//     that forward application of the same k steps produced.
//   - WriteSVG: serializes a SceneState to a standalone SVG document, scaling
//     data coordinates onto a fixed canvas.
//   - TextRenderer: a terminal playback.Renderer that prints one colored line
//     per step.
//
// 🧭 Scene model (what each step does to it):
//
//	Start     → points shown, everything else cleared
//	Divide    → vertical divider at MidX (dividers accumulate)
//	BaseCase  → focus set to the subproblem's points
//	Compare   → active comparison segment (replaced by any later step)
//	Result    → pair line added, focus cleared
//	Strip     → candidate band shown around MidX
//	Final     → pair line added, band cleared
//	Summary   → final pair highlighted
//
// Every step also updates the status message (trace.Describe) and the
// running minimum.
//
// ⚙️ Complexity:
//
//	Apply:  O(1) amortized, O(n) for steps carrying point lists
//	Replay: O(Σ applied)
//	State:  O(size of scene) (deep copy)
package render
