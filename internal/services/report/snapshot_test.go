package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotter_MissingBrowser(t *testing.T) {
	s := NewSnapshotter(
		WithExecPath(filepath.Join(t.TempDir(), "no-such-chrome")),
		WithSnapshotTimeout(5*time.Second),
	)

	_, err := s.Capture(context.Background(), []byte("<html><body>chart</body></html>"))
	require.Error(t, err)
}
