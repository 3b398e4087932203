// Package all registers every built-in visualizer.
package all

import (
	_ "github.com/coreman2200/stepviz/internal/viz/binadd"
	_ "github.com/coreman2200/stepviz/internal/viz/binsearch"
	_ "github.com/coreman2200/stepviz/internal/viz/bubblesort"
	_ "github.com/coreman2200/stepviz/internal/viz/linsearch"
	_ "github.com/coreman2200/stepviz/internal/viz/packets"
	_ "github.com/coreman2200/stepviz/internal/viz/rle"
)
