package querycache

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hupe1980/querycache/model"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := New(WithLogger(logger))
	d := queryData("rooms", 3)
	require.NoError(t, c.AddQueryData(txn{}, d))
	require.NoError(t, c.ApplyTargetChange(txn{}, 3, model.TargetChange{
		Added:           keys("rooms/a", "rooms/b"),
		SnapshotVersion: version(7),
	}))
	require.Error(t, c.AddQueryData(txn{}, d))
	require.NoError(t, c.RemoveQueryData(txn{}, d))

	logOutput := buf.String()
	require.Contains(t, logOutput, "target added")
	require.Contains(t, logOutput, `"target_id":3`)
	require.Contains(t, logOutput, `"query":"rooms|f:|ob:"`)
	require.Contains(t, logOutput, "target change applied")
	require.Contains(t, logOutput, `"added":2`)
	require.Contains(t, logOutput, "precondition failed")
	require.Contains(t, logOutput, `"level":"WARN"`)
	require.Contains(t, logOutput, "target removed")
	require.Contains(t, logOutput, `"references_purged":2`)
	require.Contains(t, logOutput, `"change_sets_purged":1`)
}

func TestLoggerFields(t *testing.T) {
	c := New(WithLogger(nil))
	require.NoError(t, c.AddQueryData(txn{}, queryData("rooms", 1)))
	require.Error(t, c.AddQueryData(txn{}, queryData("rooms", 1)))

	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, nil)).WithTargetID(9).WithCount(2)
	l.Info("hello")
	require.Contains(t, buf.String(), `"target_id":9`)
	require.Contains(t, buf.String(), `"count":2`)
}
