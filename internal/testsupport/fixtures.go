// Package testsupport holds the deterministic fixtures shared by tests
// across packages: sample source units and a pinned clock, so stored
// object.json bytes are reproducible.
package testsupport

import "time"

// FixedTime is the pinned instant used for metadata timestamps in tests.
var FixedTime = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

// Now returns FixedTime; pass it to pool.WithNow.
func Now() time.Time {
	return FixedTime
}

// AddEnglish and AddFrench express the same algorithm under different naming
// in different natural languages. They must share one function hash.
const (
	AddEnglish = `def add(a, b):
    """Add two numbers"""
    return a + b
`

	AddFrench = `def additionner(x, y):
    """Additionne deux nombres"""
    return x + y
`

	// AddEnglishCanonical is the canonical form both of the above normalize
	// to.
	AddEnglishCanonical = "def _ouverture_v_0(_ouverture_v_1, _ouverture_v_2):\n    return _ouverture_v_1 + _ouverture_v_2\n"

	// AddFunctionHash is SHA-256 of AddEnglishCanonical's UTF-8 bytes.
	AddFunctionHash = "d56d14c58dd438cf251ae3c55f4480fbe4c1160e10e5a23e135ad9c4ae66fcef"
)

// Helper is the pool-reference fixture: a function other units import by
// hash.
const (
	Helper = `def helper(z):
    return z * 2
`

	HelperCanonical = "def _ouverture_v_0(_ouverture_v_1):\n    return _ouverture_v_1 * 2\n"

	// HelperFunctionHash is SHA-256 of HelperCanonical's UTF-8 bytes.
	HelperFunctionHash = "92d4d78ccddbfa10bf07d37e011bda8070b83d6e35a408860945cd89e28e310e"
)

// AsyncFetch preserves the async marker and an inner await through
// normalization. The free name "get" is slot-assigned.
const AsyncFetch = `async def fetch(url):
    """Fetch"""
    r = await get(url)
    return r
`
