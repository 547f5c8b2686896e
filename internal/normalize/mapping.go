package normalize

import "fmt"

// Namespace is the build-time slot namespace: canonical slots are
// _ouverture_v_0, _ouverture_v_1, and so on, and the outer function of every
// pool object is _ouverture_v_0.
const Namespace = "ouverture"

// PoolModulePath is the fixed dotted module path whose from-imports reference
// other pool objects by hash.
const PoolModulePath = Namespace + ".pool"

// SlotName returns the canonical slot identifier for the namespace's nth
// variable (0 is always the outer function itself).
func SlotName(namespace string, n int) string {
	return fmt.Sprintf("_%s_v_%d", namespace, n)
}

// Mapping is the overlay content the normalizer derives from a source unit:
// everything needed, together with canonical_code, to reconstruct a
// human-facing rendering via Denormalize.
type Mapping struct {
	Docstring string

	// NameMapping is the reverse direction only (slot -> original), matching
	// what the overlay actually stores: the forward direction is only needed
	// during normalization itself.
	NameMapping map[string]string

	// AliasMapping maps a referenced pool-function hash to the local alias
	// the contributor gave it, present only when an alias was used.
	AliasMapping map[string]string
}

// Result is everything Normalize produces from a source unit.
type Result struct {
	CanonicalCode string
	Mapping       Mapping
}
