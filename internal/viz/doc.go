// Package viz renders fishery episodes in the terminal.
//
//   - [PlotTrajectory]: ASCII chart of population and harvest
//   - [Summary]: styled panel with the outcome of one rollout
//   - [Model]: Bubble Tea model that steps an environment live
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset with the next seed
//	Tab   - Cycle growth parameters
//	Up/K  - Increase parameter (+5%)
//	Down/J- Decrease parameter (-5%)
//	Q     - Quit
package viz
