//go:build vscrolldebug

package heights

const strictInvariants = true
