/*
Package errors provides the error taxonomy of the document store.

Every failure surfaced by a store falls into one of these classes, checked with
the standard errors.Is() function or the provided helper functions:

	var (
	    ErrNotFound        = errors.New("document not found")
	    ErrAlreadyExists   = errors.New("document already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrUnsupportedType = errors.New("unsupported attribute type")
	    ErrBackend         = errors.New("backend failure")
	)

Usage:

	doc, err := store.GetDocumentByID(ctx, "Books", id)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // absent, or archived and IncludeInactive was not requested
	    }
	    return nil, err
	}

BackendError unwraps to the error returned by the backing store, so SDK error
types remain reachable through errors.As. An empty result set is never an error.
*/
package errors
