package match

import "context"

// Source retrieves the raw match cards listed for a date key.
type Source interface {
	FetchMatches(ctx context.Context, dateKey string) ([]RawRecord, error)
}
