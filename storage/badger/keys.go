package badger

// Key prefixes for different data types
const (
	kvPrefix = "kv"
)

// makeKVKey namespaces a caller key so other record types can share the
// database later without collisions.
func makeKVKey(key string) []byte {
	buf := make([]byte, 0, len(kvPrefix)+1+len(key))
	buf = append(buf, kvPrefix...)
	buf = append(buf, ':')
	return append(buf, key...)
}
