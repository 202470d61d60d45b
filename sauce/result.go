package sauce

// JobResult is the outcome token understood by the job-result side channel.
type JobResult string

// The two tokens the grid accepts.
const (
	Passed JobResult = "passed"
	Failed JobResult = "failed"
)

// ResultFor maps a boolean outcome to its token.
func ResultFor(passed bool) JobResult {
	if passed {
		return Passed
	}
	return Failed
}

// Script returns the execute-script payload that annotates the running job,
// e.g. "sauce:job-result=passed".
func (r JobResult) Script() string {
	return "sauce:job-result=" + string(r)
}
