// Package record implements the structured values that flow through a recs
// pipeline.
//
// A Record is a JSON-shaped value: null, bool, number, string, array or
// object. Records are addressed with slash-separated paths where a "#N"
// segment indexes an array:
//
//	r, _ := record.Parse(`{"a":{"b":[10,20]}}`)
//	r.Get("a/b/#1").CoerceNumber() // 20
//
// Records are shared rather than copied as they move between stages; use
// Clone before mutating a record you did not create.
package record
