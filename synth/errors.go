package synth

import "errors"

// Sentinel errors for the control-path boundary. The audio callback path
// (ProcessBuffer / ProcessStereoBuffer's inner mix loop) never returns an
// error — malformed state there degrades to silence, per design.
var (
	// ErrInvalidBuffer is returned by ProcessStereoBuffer when the output
	// slice length is odd; the buffer is left untouched.
	ErrInvalidBuffer = errors.New("synthcore: stereo buffer length must be even")
)
