package svg

import "errors"

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("nothing to plot")
