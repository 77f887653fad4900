/*
Package expr compiles predicate sets into DynamoDB expressions.

Predicates are typed (field, operator, value) triples; the soft-delete policy
is a separate Visibility value so every read path applies it the same way:

	e, err := expr.NewBuilder().
	    Where(expr.Eq("createdBy", user)).
	    Visibility(expr.ActiveOnly).
	    Index("title").
	    Build()
	// e.Filter -> "(#0 = :0) AND (#1 = :1)", e.Names / e.Values hold the placeholders

Prefix search over a sorted index uses a BETWEEN range on the lower-cased
text, so the index must be sorted by the queried field:

	e, err := expr.NewBuilder().
	    KeyEquals("docType", "Books").
	    KeyPrefix("title", "The Dis").
	    Build()

Placeholders come from the expression package; nothing here concatenates
caller input into expression text.
*/
package expr
