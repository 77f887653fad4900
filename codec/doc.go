// Package codec converts between generic documents and DynamoDB attribute maps.
package codec
