// Package term renders a glyphswarm.Swarm in a terminal through tcell.
//
// Each terminal cell holds a 2x4 grid of braille dots, so a swarm running on
// an 80x24 terminal sees a 160x96 pixel viewport. Every particle lights the
// dot under its center; discs are not scaled to the dot grid.
package term
