package glyphswarm

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugFrameWindow is how many frames are averaged per frame-timing line.
const debugFrameWindow = 120

// debugStats accumulates frame timings between log lines. Only populated
// when Config.Debug is set.
type debugStats struct {
	frames int
	total  time.Duration
	worst  time.Duration
}

func (d *debugStats) add(elapsed time.Duration) bool {
	d.frames++
	d.total += elapsed
	d.worst = max(d.worst, elapsed)
	return d.frames >= debugFrameWindow
}

func (d *debugStats) reset() {
	*d = debugStats{}
}

// debugLogger writes prefixed diagnostics when enabled.
type debugLogger struct {
	enabled bool
	out     io.Writer
}

func newDebugLogger(enabled bool) debugLogger {
	return debugLogger{enabled: enabled, out: os.Stderr}
}

func (l debugLogger) logf(format string, args ...any) {
	if !l.enabled {
		return
	}
	_, _ = fmt.Fprintf(l.out, "[glyphswarm] "+format+"\n", args...)
}

// logSample reports a glyph sampling pass.
func (s *Swarm) logSample(mode Mode, points int, took time.Duration) {
	s.log.logf("sample %s %q at %dx%d: %d points in %v",
		mode, s.texts[mode], s.width, s.height, points, took)
}

// logMissingGlyphs notes runes of a mode's text that its font cannot draw.
func (s *Swarm) logMissingGlyphs(mode Mode, f *Font) {
	if !s.log.enabled || f == nil {
		return
	}
	if missing := f.missingGlyphs(s.texts[mode]); len(missing) > 0 {
		s.log.logf("%s font %s has no glyphs for %q; set [%s].font",
			mode, f.Name(), string(missing), mode)
	}
}

// logFrame is installed as the loop's frame hook in debug mode.
func (s *Swarm) logFrame(_ time.Time, elapsed time.Duration) {
	if !s.stats.add(elapsed) {
		return
	}
	avg := s.stats.total / time.Duration(s.stats.frames)
	s.log.logf("frames: %d | avg: %v | worst: %v | particles: %d",
		s.stats.frames, avg, s.stats.worst, s.field.Len())
	s.stats.reset()
}
