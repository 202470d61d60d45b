package selenium

import (
	"regexp"

	"github.com/golang/glog"
)

var debugFlag = false

// debugOutput receives wire traces.
var debugOutput = glog.Infof

// SetDebug turns on wire-level tracing of every request and reply. Traces are
// written to the glog INFO log.
func SetDebug(debug bool) {
	debugFlag = debug
}

func debugLog(format string, args ...interface{}) {
	if !debugFlag {
		return
	}
	debugOutput(format, args...)
}

var secretRE = regexp.MustCompile(`("accessKey"\s*:\s*)"[^"]*"`)

// redact hides credential values in a request or reply body before it is
// traced.
func redact(data []byte) []byte {
	return secretRE.ReplaceAll(data, []byte(`$1"****"`))
}
