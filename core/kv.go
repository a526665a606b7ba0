package core

import (
	"encoding/json"
	"reflect"
)

// KeyValueStore is the durable backing store for the portal state: a flat
// namespace of string keys holding JSON-encoded collections, scoped to one
// profile.
type KeyValueStore interface {
	// Load decodes the value stored at key into dst. dst must be a pointer
	// holding the caller's default; it is left untouched when the key is
	// missing or its contents cannot be decoded. Load never fails.
	Load(key string, dst interface{})

	// Save encodes val and replaces the value stored at key.
	// Durability is best-effort: callers log failures and carry on with
	// their in-memory state.
	Save(key string, val interface{}) error
}

// DecodeValue unmarshals raw into dst (a pointer), writing to dst only when
// the whole payload decodes. json.Unmarshal can fill part of dst before
// failing, which would break Load's keep-the-default promise.
func DecodeValue(raw []byte, dst interface{}) error {
	tmp := reflect.New(reflect.TypeOf(dst).Elem())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		return err
	}
	reflect.ValueOf(dst).Elem().Set(tmp.Elem())
	return nil
}
