package serializer

// M is a shorthand for the serialized API payloads.
type M map[string]interface{}
