package collect

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"jobinsight-engine/internal/events"
	"jobinsight-engine/internal/store"
)

var ErrAlreadyRunning = errors.New("collect already running")

// Refresher re-downloads the dataset, reloads it from disk and hands the new
// store to OnLoad. Outcomes are published on Hub when one is set.
type Refresher struct {
	Client  *Client
	Path    string
	Tracker *Tracker
	Hub     *events.Hub
	OnLoad  func(*store.Store)
	Log     zerolog.Logger
}

func (r *Refresher) Refresh(ctx context.Context) error {
	if !r.Tracker.Begin() {
		return ErrAlreadyRunning
	}

	n, err := r.Client.Run(ctx, r.Path)
	r.Tracker.Finish(n, err)
	if err != nil {
		r.publish(events.TypeCollectFailed, events.CollectFailed{Error: err.Error()})
		return err
	}

	st := store.Load(r.Path, r.Log)
	if r.OnLoad != nil {
		r.OnLoad(st)
	}
	r.publish(events.TypeDatasetLoaded, events.DatasetLoaded{
		Source:  st.Source(),
		Records: st.Len(),
		Warning: st.Warning(),
	})
	return nil
}

func (r *Refresher) publish(typ string, data any) {
	if r.Hub == nil {
		return
	}
	r.Hub.Publish(events.MakeEvent("", typ, 1, data))
}
