package physics

import "log/slog"

// Package-level logger for invariant-adjacent conditions reached from
// code with no *World in scope (geometry helpers, shape math). World
// itself carries its own *slog.Logger (World.logger, see world.go) so
// per-instance log lines can be correlated by World.ID() in
// multi-world processes; this package var is only the fallback used
// by free functions, mirroring gazed-vu's physics package use of bare
// slog.Error calls for conditions that indicate a caller bug rather
// than ordinary simulation state.
var physicsLog = slog.Default()
