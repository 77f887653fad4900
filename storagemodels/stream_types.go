package storagemodels

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DocumentResult is one element of a document stream. Exactly one of Item
// and Error is set. A decode failure keeps the undecoded attributes in Raw so
// the caller can log or repair the stored item.
type DocumentResult struct {
	Item  Document
	Raw   map[string]types.AttributeValue
	Error error
	Meta  StreamMeta
}

// StreamMeta locates a result in the scan.
type StreamMeta struct {
	Index      int64 // 0-based position among emitted documents
	PageNumber int   // 1-based scan page
	Timestamp  time.Time
}

// StreamOptions configures a document stream.
type StreamOptions struct {
	BufferSize      int
	MaxRetries      int           // retries of a throttled page scan
	RetryBackoff    time.Duration // multiplied by the attempt number
	PageSize        int32
	IncludeInactive bool
	ProgressHandler func(StreamProgress)
	// ErrorHandler sees a page scan that failed after retries. Returning true
	// ends the stream quietly; false, or no handler, emits the error.
	ErrorHandler func(error) bool
}

// StreamProgress is reported after every page and once more, with Done set,
// when the scan has run out of pages.
type StreamProgress struct {
	Documents int64 // emitted so far, decode failures included
	Pages     int
	Failures  int // decode failures plus an absorbed scan error
	Done      bool
	Elapsed   time.Duration
	Rate      float64 // documents per second
}

// StreamOption configures a document stream
type StreamOption func(*StreamOptions)

// DefaultStreamOptions buffers and pages 100 documents and retries a
// throttled page three times, one second apart and growing.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BufferSize:   100,
		MaxRetries:   3,
		RetryBackoff: time.Second,
		PageSize:     100,
	}
}

func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

func WithMaxRetries(retries int) StreamOption {
	return func(opts *StreamOptions) {
		opts.MaxRetries = retries
	}
}

func WithRetryBackoff(backoff time.Duration) StreamOption {
	return func(opts *StreamOptions) {
		opts.RetryBackoff = backoff
	}
}

func WithPageSize(size int32) StreamOption {
	return func(opts *StreamOptions) {
		opts.PageSize = size
	}
}

// WithInactiveItems streams archived documents as well
func WithInactiveItems(include bool) StreamOption {
	return func(opts *StreamOptions) {
		opts.IncludeInactive = include
	}
}

func WithProgressHandler(handler func(StreamProgress)) StreamOption {
	return func(opts *StreamOptions) {
		opts.ProgressHandler = handler
	}
}

func WithErrorHandler(handler func(error) bool) StreamOption {
	return func(opts *StreamOptions) {
		opts.ErrorHandler = handler
	}
}
