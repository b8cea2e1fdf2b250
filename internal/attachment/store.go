package attachment

import (
	"context"
	"mime/multipart"
)

// Store persists an uploaded attachment and returns a reference the
// caller can embed in its record. A failed Store call is terminal for
// the calling operation: no record may be left pointing at a
// half-written attachment. Remove discards a stored attachment whose
// record write did not go through, so no file outlives its reference.
type Store interface {
	Store(ctx context.Context, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, ref string) error
}
