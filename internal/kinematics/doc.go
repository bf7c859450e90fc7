// Package kinematics reconstructs continuous motion trajectories from noisy,
// partially-missing 2D keypoint tracking data and derives kinematic
// quantities from them.
//
// The package operates on a TrackingTensor, a 4-D array of per-frame keypoint
// coordinates indexed [frame, node, coordinate, instance], where a node is a
// tracked anatomical keypoint and an instance is one tracked subject among
// possibly several in the same recording. Unobserved samples carry NaN.
//
// The analytical stages are pure functions over in-memory arrays: FillMissing
// imputes gaps in a position series, SmoothDiff estimates a smoothed velocity
// magnitude, InterSubjectDistance computes per-frame separation between two
// subjects, and Summarize characterises data completeness. None of them
// mutates its input or retains a reference to it, so callers may run them
// concurrently across independent (node, instance) pairs.
//
// Degenerate data (all-missing series, smoothing windows larger than the
// recording, single-frame inputs) never produces an error; each stage has a
// documented fallback and reports what it did through a
// monitoring.Diagnostics sink. Only genuine contract violations, such as a
// node-name list that disagrees with the tensor shape, surface as errors.
package kinematics
