package hull

// CPUTimes records how long a query took, in seconds. Only the wall clock
// is measured by the pipeline; user and system times are left to callers
// with access to OS accounting.
type CPUTimes struct {
	Wall   float64
	User   float64
	System float64
}

// Clear resets all timings to zero.
func (t *CPUTimes) Clear() {
	*t = CPUTimes{}
}
