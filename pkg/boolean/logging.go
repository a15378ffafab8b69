package boolean

import "github.com/chazu/geop/pkg/klog"

// logger is the package's diagnostic sink. It defaults to discarding
// every message, consistent with klog's own constructor-injection
// convention; a host that wants Boolean-engine tracing calls SetLogger
// once at startup.
var logger klog.Logger = klog.Discard()

// SetLogger installs l as the Boolean engine's diagnostic sink. Pass
// klog.Discard() (the default) to silence it again.
func SetLogger(l klog.Logger) {
	logger = klog.Or(l)
}
