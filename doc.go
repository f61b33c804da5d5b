/*
Package jsontree indexes JSON text as a flat map of nodes.

Every JSON value becomes a Node keyed by an identifier that is its
serialized path, "$" for the root, "$.a.b[0]" for deeper values and
`$["a.b"]` for keys that need quoting. Nodes never reference each other,
parents and children are derived from identifiers.

Each node knows the span of its own tokens in the text and a bound span
that also covers the key of an object member. The spans drive offset
lookups (FindNodeAtOffset), they are rewritten whenever the tree writes
text (Stringify) and shifted when pending subtrees are merged
(StringifyNestNodes).

Malformed input never fails a call: Parse keeps what it could recover and
reports the problem through Errors, lookups simply find nothing.
*/
package jsontree // import "github.com/d1ced/jsontree"
