package model

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
)

// TextRenderer writes snapshots as rows of block characters
type TextRenderer struct {
	Alive string
	Dead  string
}

// NewTextRenderer returns a renderer using two-column blocks per cell
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{Alive: gridPosBlock, Dead: gridPosEmpty}
}

// Display renders the snapshot to w, one line per row
func (r *TextRenderer) Display(w io.Writer, s Snapshot) error {
	bw := bufio.NewWriter(w)
	for y := range s.Height() {
		for x := range s.Width() {
			if s.Alive(x, y) {
				bw.WriteString(r.Alive)
			} else {
				bw.WriteString(r.Dead)
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[TextRenderer.Display] failed to write frame")
	}
	return nil
}
