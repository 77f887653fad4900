/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/docstore/expr"
	"github.com/suparena/docstore/storagemodels"
)

// Stream scans a whole table page by page and emits every document on the
// returned channel, which is closed when the scan ends. Cancelling ctx ends
// the stream with a ctx.Err() result when the buffer has room for it.
// Throttling errors are retried per StreamOptions.
func (d *DynamodbDocumentStore) Stream(ctx context.Context, table string, opts ...storagemodels.StreamOption) <-chan storagemodels.DocumentResult {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.DocumentResult, options.BufferSize)
	go d.streamWorker(ctx, table, options, resultCh)
	return resultCh
}

func (d *DynamodbDocumentStore) streamWorker(
	ctx context.Context,
	table string,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.DocumentResult,
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	startTime := time.Now()
	var failures int

	reportProgress := func(done bool) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			Documents: atomic.LoadInt64(&itemIndex),
			Pages:     pageNumber,
			Failures:  failures,
			Done:      done,
			Elapsed:   time.Since(startTime),
		}
		if secs := progress.Elapsed.Seconds(); secs > 0 {
			progress.Rate = float64(progress.Documents) / secs
		}
		options.ProgressHandler(progress)
	}

	errorResult := func(err error) storagemodels.DocumentResult {
		return storagemodels.DocumentResult{
			Error: err,
			Meta: storagemodels.StreamMeta{
				Index:      atomic.LoadInt64(&itemIndex),
				PageNumber: pageNumber,
				Timestamp:  time.Now(),
			},
		}
	}
	fail := func(err error) {
		select {
		case <-ctx.Done():
		case resultCh <- errorResult(err):
		}
	}
	// cancelled marks a cut-short stream. The send must not block since
	// nobody may be reading anymore.
	cancelled := func() {
		select {
		case resultCh <- errorResult(ctx.Err()):
		default:
		}
	}

	e, err := expr.NewBuilder().Visibility(expr.VisibilityFor(options.IncludeInactive)).Build()
	if err != nil {
		fail(err)
		return
	}
	input := &dynamodb.ScanInput{
		TableName:                 aws.String(table),
		FilterExpression:          e.Filter,
		ExpressionAttributeNames:  e.Names,
		ExpressionAttributeValues: e.Values,
		Limit:                     aws.Int32(options.PageSize),
	}

	for {
		select {
		case <-ctx.Done():
			cancelled()
			return
		default:
		}

		out, err := d.scanWithRetry(ctx, input, options)
		if err != nil {
			if ctx.Err() != nil {
				cancelled()
				return
			}
			if options.ErrorHandler == nil || !options.ErrorHandler(err) {
				fail(d.backend("Scan", table, err))
				return
			}
			// The handler absorbed the error; end the stream without an
			// error result. The page cannot be skipped without its key.
			failures++
			break
		}

		pageNumber++
		for _, item := range out.Items {
			result := d.processItem(item, atomic.LoadInt64(&itemIndex), pageNumber)
			atomic.AddInt64(&itemIndex, 1)

			select {
			case <-ctx.Done():
				cancelled()
				return
			case resultCh <- result:
			}

			if result.Error != nil {
				failures++
			}
		}

		reportProgress(false)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	d.logger.Debug().Str("table", table).Int("pages", pageNumber).Int64("items", atomic.LoadInt64(&itemIndex)).Msg("stream complete")
	reportProgress(true)
}

// scanWithRetry retries throttling errors with a linear backoff
func (d *DynamodbDocumentStore) scanWithRetry(
	ctx context.Context,
	input *dynamodb.ScanInput,
	options storagemodels.StreamOptions,
) (*dynamodb.ScanOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := d.client.Scan(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < options.MaxRetries {
			d.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("scan throttled, retrying")
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("scan failed after %d retries: %w", options.MaxRetries, lastErr)
}

func (d *DynamodbDocumentStore) processItem(
	item map[string]types.AttributeValue,
	index int64,
	pageNumber int,
) storagemodels.DocumentResult {
	meta := storagemodels.StreamMeta{
		Index:      index,
		PageNumber: pageNumber,
		Timestamp:  time.Now(),
	}

	doc, err := d.decode(item)
	if err != nil {
		return storagemodels.DocumentResult{
			Error: fmt.Errorf("failed to decode item %d: %w", index, err),
			Raw:   item,
			Meta:  meta,
		}
	}
	return storagemodels.DocumentResult{Item: doc, Raw: item, Meta: meta}
}

// isRetryableError reports throttling and transient server errors
func isRetryableError(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	if errors.As(err, &throughput) || errors.As(err, &limit) || errors.As(err, &internal) {
		return true
	}

	var retryable interface{ RetryableError() bool }
	if errors.As(err, &retryable) {
		return retryable.RetryableError()
	}
	return false
}
