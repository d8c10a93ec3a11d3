// Package timeline models the multi-segment media timeline rendered by the seek bar.
package timeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/samber/mo"
	"github.com/seekbar-cli/seekbar/filesystem"
	"github.com/seekbar-cli/seekbar/log"
)

// Scenario is a declarative timeline description, loadable from a JSON file,
// used to feed the demo playback simulator. Offsets are expressed in seconds
// for hand-editing comfort and converted to milliseconds by Build.
type Scenario struct {
	Name    string           `json:"name" jsonschema:"description=Human-readable scenario name shown in the picker"`
	Windows []ScenarioWindow `json:"windows" jsonschema:"description=Ordered playable units of the timeline"`

	// ExtraMarkers are host-injected break markers appended after the
	// timeline-derived ones, in file order.
	ExtraMarkers []ScenarioMarker `json:"extra_markers,omitempty" jsonschema:"description=Additional break markers overlaid on the bar"`
}

// ScenarioWindow describes one window. A zero or absent duration marks the
// window as live/unbounded.
type ScenarioWindow struct {
	DurationSec float64          `json:"duration_sec,omitempty" jsonschema:"description=Window duration in seconds; omit for live/unknown"`
	Unseekable  bool             `json:"unseekable,omitempty" jsonschema:"description=Disallow seeking within this window"`
	Dynamic     bool             `json:"dynamic,omitempty" jsonschema:"description=Window content still changing (live edge)"`
	Periods     []ScenarioPeriod `json:"periods,omitempty" jsonschema:"description=Sub-segments carrying the ad-break schedule"`
}

// ScenarioPeriod describes one period within a window.
type ScenarioPeriod struct {
	DurationSec float64         `json:"duration_sec,omitempty" jsonschema:"description=Period duration in seconds; omit for unknown"`
	OffsetSec   float64         `json:"offset_sec" jsonschema:"description=Period start offset within its window in seconds"`
	AdBreaks    []ScenarioBreak `json:"ad_breaks,omitempty"`
}

// ScenarioBreak describes one ad break within a period.
type ScenarioBreak struct {
	AtSec  float64 `json:"at_sec,omitempty" jsonschema:"description=Period-local break offset in seconds"`
	AtEnd  bool    `json:"at_end,omitempty" jsonschema:"description=Schedule the break at the end of the period"`
	Played bool    `json:"played,omitempty"`
}

// ScenarioMarker describes one extra marker relative to the display range start.
type ScenarioMarker struct {
	AtSec  float64 `json:"at_sec" jsonschema:"description=Marker offset from the display range start in seconds"`
	Played bool    `json:"played,omitempty"`
}

func secToMs(sec float64) int64 {
	return int64(sec * 1000)
}

// Build converts the scenario into a Timeline and validates it.
func (s Scenario) Build() (Timeline, error) {
	var tl Timeline

	for _, sw := range s.Windows {
		w := Window{
			Seekable: !sw.Unseekable,
			Dynamic:  sw.Dynamic,
			Duration: mo.None[int64](),
		}
		if sw.DurationSec > 0 {
			w.Duration = mo.Some(secToMs(sw.DurationSec))
		}

		// A window without explicit periods gets a single period spanning it.
		if len(sw.Periods) == 0 {
			w.Periods = []Period{{Duration: w.Duration}}
		}

		for _, sp := range sw.Periods {
			p := Period{
				PositionInWindow: secToMs(sp.OffsetSec),
				Duration:         mo.None[int64](),
			}
			if sp.DurationSec > 0 {
				p.Duration = mo.Some(secToMs(sp.DurationSec))
			}

			for _, sb := range sp.AdBreaks {
				offset := secToMs(sb.AtSec)
				if sb.AtEnd {
					offset = EndOfSource
				}
				p.AdBreaks = append(p.AdBreaks, AdBreak{Offset: offset, Played: sb.Played})
			}

			w.Periods = append(w.Periods, p)
		}

		tl.Windows = append(tl.Windows, w)
	}

	if err := tl.Validate(); err != nil {
		return Timeline{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	return tl, nil
}

// ExtraMarkerOffsets returns the extra markers as parallel offset/played
// slices, in file order.
func (s Scenario) ExtraMarkerOffsets() (times []int64, played []bool) {
	for _, m := range s.ExtraMarkers {
		times = append(times, secToMs(m.AtSec))
		played = append(played, m.Played)
	}
	return times, played
}

// LoadScenario reads and decodes a scenario file through the virtualized filesystem.
func LoadScenario(path string) (Scenario, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario %s: %w", path, err)
	}

	if len(s.Windows) == 0 {
		return Scenario{}, fmt.Errorf("scenario %s: no windows", path)
	}

	return s, nil
}

// Available returns the builtin scenarios plus any valid JSON scenario files
// from dir. Unreadable or invalid files are skipped with a warning.
func Available(dir string) []Scenario {
	scenarios := Builtins()

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return scenarios
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		s, err := LoadScenario(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Warnf("skipping scenario %s: %s", entry.Name(), err)
			continue
		}
		scenarios = append(scenarios, s)
	}

	return scenarios
}

// Builtins returns the embedded demo scenarios.
func Builtins() []Scenario {
	return []Scenario{
		{
			Name: "feature with ad breaks",
			Windows: []ScenarioWindow{
				{
					DurationSec: 600,
					Periods: []ScenarioPeriod{
						{
							DurationSec: 600,
							AdBreaks: []ScenarioBreak{
								{AtSec: 0, Played: true},
								{AtSec: 180},
								{AtSec: 420},
								{AtEnd: true},
							},
						},
					},
				},
			},
		},
		{
			Name: "three-part playlist",
			Windows: []ScenarioWindow{
				{
					DurationSec: 120,
					Periods: []ScenarioPeriod{
						{DurationSec: 120, AdBreaks: []ScenarioBreak{{AtSec: 60}}},
					},
				},
				{
					DurationSec: 240,
					Periods: []ScenarioPeriod{
						{DurationSec: 90, AdBreaks: []ScenarioBreak{{AtEnd: true}}},
						{DurationSec: 150, OffsetSec: 90, AdBreaks: []ScenarioBreak{{AtSec: 30}}},
					},
				},
				{DurationSec: 60},
			},
			ExtraMarkers: []ScenarioMarker{{AtSec: 400}},
		},
		{
			Name: "live stream",
			Windows: []ScenarioWindow{
				{Dynamic: true, Unseekable: true},
			},
		},
	}
}
