package remittance

// Query modifiers accepted by QueryHandler implementations.
const (
	// KeyQueryMod means to query for an exact match of the given key.
	KeyQueryMod = ""

	// PrefixQueryMod means to query for all keys with the given prefix.
	PrefixQueryMod = "prefix"
)
