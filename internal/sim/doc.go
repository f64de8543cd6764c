// Package sim provides software stand-ins for the converter, timer and DMA
// peripherals used by the capture and playback pipelines.
//
// Every peripheral can be driven two ways:
//
//   - Manually, from the caller's goroutine. Timer.Tick and DMA.Transfer
//     advance the hardware side synchronously, and both implement the
//     Spinner hook so a pipeline busy-wait makes deterministic progress.
//     Tests use this mode.
//   - Paced, from a background goroutine that catches up with wall-clock
//     time every few milliseconds. Commands use this mode.
package sim
