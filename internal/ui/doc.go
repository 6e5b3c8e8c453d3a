// Package ui renders ecsctl's progress output with Lip Gloss.
//
// PhaseDisplay shows each resolution step (task, container instance, host)
// with its timing before the remote command takes over the terminal:
//
//	pd := ui.NewPhaseDisplay(os.Stderr)
//	pd.Begin("Task t1")
//	pd.Begin("Container instance") // completes "Task t1"
//	pd.Complete("")
//
// Colors are ANSI codes so output follows the terminal theme. SetColorMode
// applies the output.color setting and DisableColors backs --no-color.
package ui
