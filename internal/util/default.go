package util

// OrDefault returns v, or defaultVal if v is the zero value.
func OrDefault[V comparable](v, defaultVal V) V {
	var zeroVal V
	if v == zeroVal {
		return defaultVal
	}
	return v
}
