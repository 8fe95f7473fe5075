// Package integrity provides health checks for the tag manager.
//
// Unlike the 'tags' package, which imports and exports tag lists, this package
// validates the infrastructure those operations rely on and the consistency of the
// stored tags.
//
// # Checks Provided
//
//   - Structure: the imports/ and exports/ folders exist in the storage bucket.
//   - Schema: the tags table has every column of the tag model.
//   - Tags: per project, addresses shared by several tags on one controller, tags
//     without any address, and tags that would be rejected if imported again.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs the structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/tags/:project : Runs the tag check for one project.
package integrity
