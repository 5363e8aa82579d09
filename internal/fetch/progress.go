package fetch

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// completionMarker is the literal substring the worker prints once per
// finished file. This substring match is the entire contract with the
// worker's output; keep it confined to the watcher.
const completionMarker = "Download complete:"

// watcher consumes a worker's combined output stream line by line and
// turns completion markers into progress events. Events never exceed
// total, even if the worker prints extra markers.
type watcher struct {
	marker  string
	total   int
	done    int
	onEvent func(completed, total int)
	log     zerolog.Logger
}

func newWatcher(total int, onEvent func(completed, total int), logger zerolog.Logger) *watcher {
	return &watcher{
		marker:  completionMarker,
		total:   total,
		onEvent: onEvent,
		log:     logger,
	}
}

// consume scans r until EOF. It must run while the worker is alive so
// progress is observable incrementally, not after exit.
func (w *watcher) consume(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		w.log.Debug().Str("op", "fetch/progress").Msg(line)
		if strings.Contains(line, w.marker) && w.done < w.total {
			w.done++
			if w.onEvent != nil {
				w.onEvent(w.done, w.total)
			}
		}
	}
}

func (w *watcher) completed() int {
	return w.done
}
