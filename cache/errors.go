package cache

import "errors"

// ErrGuildUnavailable is returned by Guild when the guild is known to the
// cache but flagged unavailable, either because the gateway announced an
// outage or because it was seeded by the initial ready payload and has not
// been streamed in yet. It distinguishes "exists but unreachable" from a
// plain miss so callers never act on stale guild data.
var ErrGuildUnavailable = errors.New("guild is unavailable")
