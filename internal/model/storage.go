package model

import "context"

// Persisted storage slot keys, mirroring the browser localStorage keys of
// the original storefront.
const (
	KeyCart        = "cart"
	KeyCurrentUser = "currentUser"
)

// KeyValue abstracts the persisted key-value storage the stores write
// through. Implementations return ErrNotFound for absent keys so store
// logic never depends on a concrete backend.
type KeyValue interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
