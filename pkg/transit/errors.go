package transit

import "fmt"

// DataAcquisitionError reports a failure to download, extract or verify the
// static reference bundle. Fatal to the refresh that requested it, not to
// the process.
type DataAcquisitionError struct {
	Stage string // "download", "extract", "verify"
	Err   error
}

func (e *DataAcquisitionError) Error() string {
	return fmt.Sprintf("static data acquisition failed during %s: %s", e.Stage, e.Err)
}

func (e *DataAcquisitionError) Unwrap() error {
	return e.Err
}

// FeedFetchError reports a transport or provider failure on the realtime
// feed. StatusCode is zero when the request never produced a response,
// which lets callers distinguish "provider unreachable" from "provider
// returned an error or malformed data".
type FeedFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FeedFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("realtime feed fetch failed (status %d): %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("realtime feed fetch failed: %s", e.Err)
}

func (e *FeedFetchError) Unwrap() error {
	return e.Err
}

// CacheWriteError reports a store-level failure during the delete/insert
// cycle of a cache replace.
type CacheWriteError struct {
	Operation string // "delete", "insert"
	Err       error
}

func (e *CacheWriteError) Error() string {
	return fmt.Sprintf("trip cache %s failed: %s", e.Operation, e.Err)
}

func (e *CacheWriteError) Unwrap() error {
	return e.Err
}

// QueryError reports a store-level failure during a read, or a refresh
// failure propagated through the lazy-refresh path.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("trip query failed: %s", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
