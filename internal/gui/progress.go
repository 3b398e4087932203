//go:build ebiten

package gui

import (
	"fmt"

	"github.com/coreman2200/stepviz/internal/render"
)

func progress(at, total int, f render.Frame) string {
	return fmt.Sprintf("step %d/%d  %s  x%.2g", at, total, f.State, f.Speed)
}
