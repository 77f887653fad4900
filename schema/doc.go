/*
Package schema declares the shape of a collection.

A Schema maps each persisted field to one of three type tags (S, N, BOOL).
It is validated once, when a store is constructed, so an unknown tag fails
fast instead of at the first write. A Definition adds validator rules per
field and is what collections are declared with in YAML:

	fields:
	  title: {type: S, validate: "required,min=10,max=1000"}
	  pages: {type: N, validate: "min=0"}
	  isbn:  {type: S, validate: "min=8,max=200"}
*/
package schema
