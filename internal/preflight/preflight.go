package preflight

// Result captures the outcome of one environment check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}
