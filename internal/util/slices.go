package util

// SlicePop removes the last element of a non-empty slice used as a stack. The
// vacated slot is zeroed.
func SlicePop[S ~[]E, E any](s S) (last E, rest S) {
	last = s[len(s)-1]
	var zeroVal E
	s[len(s)-1] = zeroVal
	return last, s[:len(s)-1]
}
