package state

import "errors"

// ErrUnknownTab is returned for a tab name outside Tabs.
var ErrUnknownTab = errors.New("unknown tab")
