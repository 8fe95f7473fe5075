// Package tags implements the tag feature: listing project tags, importing tag
// lists from CSV, JSON or YAML files and exporting them in the same formats.
//
// An import runs one reconcile pass (see core/reconcile) over the project's tags,
// with Adapter supplying the tag-specific hooks, and saves the written tags in a
// single transaction. Import files come from the local disk, an HTTP request or
// the imports/ prefix of the storage bucket.
//
// # Record fields
//
//	Name, Group, Description, DataType, PollGroup, LogToAuditTrail
//	Address_<n>      address on controller n (1-based), or a bare Address
//	AccessRight_<n>  none, read, write or read_write on controller n
//
// A tag's full name is "<Group>.<Name>"; renaming during an import keeps the group.
// Encode writes these fields back, so an export imports into the same tags.
//
// # Routes
//
//	GET  /tags                    projects
//	GET  /tags/:project           tags of a project
//	POST /tags/:project/import    silent import
//	GET  /tags/:project/export    download (?format=csv|json|yaml)
//	POST /tags/:project/export    write exports/<project>.<format> to storage
//	GET  /imports                 import files in storage
package tags
