package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCountdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    [3]int
		wantErr bool
	}{
		{name: "clock", args: []string{"01:02:03"}, want: [3]int{1, 2, 3}},
		{name: "three numbers", args: []string{"0", "5", "0"}, want: [3]int{0, 5, 0}},
		{name: "duration", args: []string{"90s"}, want: [3]int{0, 1, 30}},
		{name: "long duration", args: []string{"2h30m"}, want: [3]int{2, 30, 0}},
		{name: "out of range passes through", args: []string{"00:99:00"}, want: [3]int{0, 99, 0}},
		{name: "fraction", args: []string{"1.5s"}, wantErr: true},
		{name: "a day", args: []string{"24h"}, wantErr: true},
		{name: "garbage", args: []string{"soon"}, wantErr: true},
		{name: "two numbers", args: []string{"1", "2"}, wantErr: true},
		{name: "not a number", args: []string{"a:b:c"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, m, s, err := parseCountdown(tt.args)
			if tt.wantErr {
				require.ErrorIs(t, err, errCountdownFormat)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, [3]int{h, m, s})
		})
	}
}
