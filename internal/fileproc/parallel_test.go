package fileproc

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachFileCollectsResults(t *testing.T) {
	files := []string{"a.py", "b.py", "c.py"}
	results := ForEachFile(context.Background(), files, func(_ context.Context, path string) (string, error) {
		return strings.ToUpper(path), nil
	})

	sort.Strings(results)
	assert.Equal(t, []string{"A.PY", "B.PY", "C.PY"}, results)
}

func TestForEachFileNEmptyInput(t *testing.T) {
	results, errs := ForEachFileN(context.Background(), nil, 4,
		func(_ context.Context, path string) (int, error) { return 0, nil }, nil)
	assert.Nil(t, results)
	assert.Nil(t, errs)
}

func TestForEachFileNCollectsErrors(t *testing.T) {
	files := []string{"good.py", "bad.py", "also-good.py"}
	boom := errors.New("boom")

	results, errs := ForEachFileN(context.Background(), files, 2,
		func(_ context.Context, path string) (string, error) {
			if path == "bad.py" {
				return "", boom
			}
			return path, nil
		}, nil)

	assert.Len(t, results, 2)
	require.NotNil(t, errs)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, "bad.py", errs.Errors[0].Path)
	assert.ErrorIs(t, errs.Errors[0].Err, boom)
	assert.Contains(t, errs.Error(), "bad.py")
}

func TestForEachFileNProgress(t *testing.T) {
	files := []string{"a", "b", "c", "d"}
	var ticks int32

	ForEachFileN(context.Background(), files, 2,
		func(_ context.Context, path string) (struct{}, error) {
			if path == "b" {
				return struct{}{}, errors.New("fail")
			}
			return struct{}{}, nil
		},
		func() { atomic.AddInt32(&ticks, 1) })

	// Failures tick too, so the bar always completes.
	assert.Equal(t, int32(4), atomic.LoadInt32(&ticks))
}

func TestForEachFileNCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []string{"a", "b", "c"}
	results, errs := ForEachFileN(ctx, files, 1,
		func(_ context.Context, path string) (string, error) { return path, nil }, nil)

	assert.Empty(t, results)
	require.NotNil(t, errs)
	require.True(t, errs.HasErrors())
	for _, pe := range errs.Errors {
		assert.ErrorIs(t, pe.Err, context.Canceled)
	}
}

func TestProcessingErrorsMessages(t *testing.T) {
	errs := &ProcessingErrors{}
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "no errors", errs.Error())

	errs.Add("a.py", errors.New("first"))
	assert.Equal(t, "a.py: first", errs.Error())

	errs.Add("b.py", errors.New("second"))
	assert.Contains(t, errs.Error(), "2 files failed")
}
