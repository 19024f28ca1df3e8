package port

import "context"

// HistorySink receives navigation events worth remembering.
// Implementations must not block the caller.
type HistorySink interface {
	RecordVisit(ctx context.Context, url, title string)
}
