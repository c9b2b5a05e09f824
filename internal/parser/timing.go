package parser

import (
	"fmt"
	"time"
)

// Measure runs fn and wraps its outcome in a Result stamped with the elapsed
// time. A panic in fn is recovered and reported as a failed Result.
// time.Now carries a monotonic reading, so wall clock adjustments do not
// affect the duration.
func Measure(fn func() (any, error)) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = Result{Error: fmt.Sprint(r)}
		}
		res.Elapsed = time.Since(start)
	}()

	data, err := fn()
	if err != nil {
		return Result{Error: err.Error()}
	}
	return Result{Success: true, Data: data}
}
