package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return non-empty consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
	require.Contains(t, Full(), Current().Platform)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	run := func(args ...string) string {
		root := &cobra.Command{Use: "daylight"}
		AttachCobraVersionCommand(root)

		var out bytes.Buffer

		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.Execute())

		return out.String()
	}

	require.Contains(t, run("version"), Short())

	var info Info
	require.NoError(t, json.Unmarshal([]byte(run("version", "--json")), &info))
	require.Equal(t, Current(), info)
}
