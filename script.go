package glyphswarm

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in a scenario script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Ms     int    `json:"ms,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Mode   string `json:"mode,omitempty"`
}

// scriptFile is the top-level JSON structure for a scenario script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a parsed sequence of headless actions:
//
//	{"action": "activate"}
//	{"action": "advance", "ms": 8000}
//	{"action": "advance", "frames": 30}
//	{"action": "resize", "width": 1280, "height": 720}
//	{"action": "mode", "mode": "secondary"}
//	{"action": "screenshot", "label": "after-flip"}
//	{"action": "deactivate"}
type Script struct {
	steps []scriptStep
}

// LoadScript parses and validates a JSON scenario script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "activate", "deactivate", "screenshot":
	case "advance":
		if st.Ms <= 0 && st.Frames <= 0 {
			return fmt.Errorf("advance needs ms or frames")
		}
	case "resize":
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("resize needs positive width and height")
		}
	case "mode":
		if _, err := parseMode(st.Mode); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func parseMode(s string) (Mode, error) {
	switch s {
	case "primary":
		return ModePrimary, nil
	case "secondary":
		return ModeSecondary, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Run executes every step of script in order and returns the paths of the
// screenshots it wrote.
func (h *Headless) Run(script *Script) ([]string, error) {
	var shots []string
	for i, st := range script.steps {
		switch st.Action {
		case "activate":
			h.Swarm.SetActive(true)
		case "deactivate":
			h.Swarm.SetActive(false)
		case "advance":
			if st.Ms > 0 {
				h.Advance(time.Duration(st.Ms) * time.Millisecond)
			}
			if st.Frames > 0 {
				h.Step(st.Frames)
			}
		case "resize":
			h.Swarm.Resize(st.Width, st.Height)
		case "mode":
			m, _ := parseMode(st.Mode)
			h.Swarm.SetMode(m)
		case "screenshot":
			path, err := SaveRaster(h.ScreenshotDir, st.Label, h.Surface)
			if err != nil {
				return shots, fmt.Errorf("step %d: %w", i, err)
			}
			shots = append(shots, path)
		}
	}
	return shots, nil
}
