package control

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/daylight/internal/domain/alarm"
	"github.com/oshokin/daylight/internal/domain/timefmt"
	"github.com/oshokin/daylight/internal/service/session"
)

// View is the decoded form of a snapshot message, used by clients for display.
type View struct {
	Now     string `json:"now"`
	Digital string `json:"digital"`
	Theme   string `json:"theme"`
	Hands   struct {
		Hour   float64 `json:"hour"`
		Minute float64 `json:"minute"`
		Second float64 `json:"second"`
	} `json:"hands"`
	Alarm struct {
		ID      string `json:"id"`
		Target  string `json:"target"`
		Label   string `json:"label"`
		Status  string `json:"status"`
		Armed   bool   `json:"armed"`
		Enabled bool   `json:"enabled"`
		Playing bool   `json:"playing"`
		ArmedAt string `json:"armed_at"`
		ArmedBy string `json:"armed_by"`
	} `json:"alarm"`
	Countdown struct {
		Configured        string `json:"configured"`
		ConfiguredSeconds int    `json:"configured_seconds"`
		Remaining         string `json:"remaining"`
		RemainingSeconds  int    `json:"remaining_seconds"`
		Running           bool   `json:"running"`
	} `json:"countdown"`
	Stopwatch struct {
		Elapsed   string   `json:"elapsed"`
		ElapsedMS int64    `json:"elapsed_ms"`
		Running   bool     `json:"running"`
		Laps      []string `json:"laps"`
	} `json:"stopwatch"`
}

// SnapshotFields flattens a session snapshot into JSON-compatible values.
func SnapshotFields(snapshot session.Snapshot) map[string]any {
	return map[string]any{
		"now":     snapshot.Now.Format(time.RFC3339Nano),
		"digital": snapshot.Digital,
		"theme":   snapshot.Theme.String(),
		"hands": map[string]any{
			"hour":   snapshot.Hands.Hour,
			"minute": snapshot.Hands.Minute,
			"second": snapshot.Hands.Second,
		},
		"palette": map[string]any{
			"background":        snapshot.Palette.Background,
			"text":              snapshot.Palette.Text,
			"accent":            snapshot.Palette.Accent,
			"sub_text":          snapshot.Palette.SubText,
			"button_background": snapshot.Palette.ButtonBackground,
		},
		"alarm":     alarmFields(snapshot.Alarm),
		"countdown": countdownFields(snapshot),
		"stopwatch": stopwatchFields(snapshot),
	}
}

// ToStruct converts a session snapshot into its protobuf message.
func ToStruct(snapshot session.Snapshot) (*structpb.Struct, error) {
	result, err := structpb.NewStruct(SnapshotFields(snapshot))
	if err != nil {
		return nil, fmt.Errorf("convert snapshot: %w", err)
	}

	return result, nil
}

// Decode converts a snapshot message into a View.
func Decode(message *structpb.Struct) (*View, error) {
	data, err := json.Marshal(message.AsMap())
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	view := new(View)
	if err = json.Unmarshal(data, view); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return view, nil
}

func alarmFields(state *domain.State) map[string]any {
	if state == nil {
		state = new(domain.State)
	}

	fields := map[string]any{
		"id":       state.ID,
		"target":   "",
		"label":    state.Label,
		"status":   state.Status().String(),
		"armed":    state.IsArmed,
		"enabled":  state.IsEnabled,
		"playing":  state.IsPlaying,
		"armed_at": "",
		"armed_by": "",
	}

	if state.ID != "" {
		fields["target"] = state.Target.String()
	}

	if !state.ArmedAt.IsZero() {
		fields["armed_at"] = state.ArmedAt.Format(time.RFC3339)
	}

	if state.ArmedBy != nil {
		fields["armed_by"] = state.ArmedBy.String()
	}

	return fields
}

func countdownFields(snapshot session.Snapshot) map[string]any {
	return map[string]any{
		"configured":         timefmt.Countdown(snapshot.Countdown.Configured),
		"configured_seconds": snapshot.Countdown.Configured,
		"remaining":          snapshot.Countdown.String(),
		"remaining_seconds":  snapshot.Countdown.Remaining,
		"running":            snapshot.Countdown.Running,
	}
}

func stopwatchFields(snapshot session.Snapshot) map[string]any {
	laps := make([]any, 0, len(snapshot.Stopwatch.Laps))
	for _, lap := range snapshot.Stopwatch.Laps {
		laps = append(laps, timefmt.Elapsed(lap))
	}

	return map[string]any{
		"elapsed":    snapshot.Stopwatch.String(),
		"elapsed_ms": snapshot.Stopwatch.Elapsed.Milliseconds(),
		"running":    snapshot.Stopwatch.Running,
		"laps":       laps,
	}
}
