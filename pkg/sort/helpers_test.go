package sort

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Run SampleSort on list and fail the test if it takes longer than timeout
// (a stuck barrier would otherwise hang the test binary).
func sortTimeout(t *testing.T, timeout time.Duration, list []int32, opts ...Option) (*Result, error) {
	type sortRet struct {
		res *Result
		err error
	}

	retChan := make(chan sortRet, 1)
	go func() {
		res, err := SampleSort(context.Background(), list, opts...)
		retChan <- sortRet{res, err}
	}()

	select {
	case ret := <-retChan:
		return ret.res, ret.err
	case <-time.After(timeout):
		t.Fatalf("Timeout")
	}
	return nil, nil
}

// Sort list and check every property of the result
func sampleSortTest(t *testing.T, list []int32, opts ...Option) *Result {
	res, err := sortTimeout(t, 10*time.Second, list, opts...)
	require.Nilf(t, err, "Sort Error: %v", err)

	err = CheckResult(list, res)
	require.Nilf(t, err, "Did not sort correctly: %v", err)
	return res
}

func isNonDecreasing(list []int32) bool {
	for i := 1; i < len(list); i++ {
		if list[i] < list[i-1] {
			return false
		}
	}
	return true
}
