package utils

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ContainsErrorSubstring checks if the error or any of its wrapped errors
// contain the target substring, case-insensitively. Remote APIs report the
// interesting failure classes (policy, billing, rate limits) only as message
// text, so substring matching is the classification mechanism here.
func ContainsErrorSubstring(err error, target string) bool {
	target = strings.ToLower(target)
	for err != nil {
		if strings.Contains(strings.ToLower(err.Error()), target) {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

func WrapIfNotNil(err error, context ...string) error {
	if err == nil {
		return nil
	}

	callerName := "unknown"
	if pc, _, _, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			callerName = fn.Name()
		}
	}

	parts := make([]string, 0, 1+len(context))
	parts = append(parts, callerName)
	parts = append(parts, context...)

	return fmt.Errorf("%s: %w", strings.Join(parts, " - "), err)
}
