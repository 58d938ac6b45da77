// Package file stores uploaded files (the volunteer's résumé) on the local
// disk or in S3.
//
// Both backends implement Storage. Keys are slash separated paths relative to
// the storage root; keys containing ".." are rejected with ErrInvalidPath.
// The stored MIME type is sniffed from the content, with generic results
// (DOCX sniffs as a zip archive) resolved by extension.
//
//	store, err := file.New(ctx, cfg.Files)
//	f, err := store.Save(ctx, fh, "curriculos/"+id+file.GetExtension(fh))
//	link := store.URL(f.Key)
//
// S3 errors are mapped to the package sentinels (ErrAccessDenied,
// ErrServiceUnavailable, ...) so callers can use errors.Is.
package file
