//go:build !vscrolldebug

package heights

// strictInvariants makes invariant violations panic. Enabled with the
// vscrolldebug build tag.
const strictInvariants = false
