package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-geo-sync/models"
)

const progressBuffer = 16

// ProgressHub fans session progress out to subscribers. Publishing never
// blocks: a slow subscriber loses its oldest unread report.
type ProgressHub struct {
	mu   sync.Mutex
	subs map[string]map[chan models.Progress]struct{}
	last map[string]models.Progress
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{
		subs: make(map[string]map[chan models.Progress]struct{}),
		last: make(map[string]models.Progress),
	}
}

// Subscribe returns a channel receiving the layer's progress, starting with
// the last report if one exists. cancel closes the channel unless [Forget]
// already did.
func (h *ProgressHub) Subscribe(layerID string) (<-chan models.Progress, func()) {
	ch := make(chan models.Progress, progressBuffer)

	h.mu.Lock()
	if h.subs[layerID] == nil {
		h.subs[layerID] = make(map[chan models.Progress]struct{})
	}
	h.subs[layerID][ch] = struct{}{}
	if p, ok := h.last[layerID]; ok {
		ch <- p
	}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[layerID][ch]; !ok {
				return
			}
			delete(h.subs[layerID], ch)
			if len(h.subs[layerID]) == 0 {
				delete(h.subs, layerID)
			}
			close(ch)
		})
	}
}

func (h *ProgressHub) Publish(p models.Progress) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last[p.LayerID] = p
	for ch := range h.subs[p.LayerID] {
		select {
		case ch <- p:
			continue
		default:
		}
		// full: drop the oldest report
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- p:
		default:
		}
	}
}

// Forget drops the last report of a detached layer and closes every
// subscription to it.
func (h *ProgressHub) Forget(layerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.last, layerID)
	for ch := range h.subs[layerID] {
		close(ch)
	}
	delete(h.subs, layerID)
}

// Share of the session percentage per stage. Fetch covers the page loop,
// apply is completed once the replica caught up.
var stageWeights = [...]int{
	models.StageReconcile: 5,
	models.StageFetch:     45,
	models.StageApply:     15,
	models.StageUpload:    30,
	models.StageCommit:    5,
}

// sessionProgress keeps the reports of one session monotonic.
type sessionProgress struct {
	hub       *ProgressHub
	layerID   string
	sessionID string

	mu       sync.Mutex
	stage    models.Stage
	fraction float64
	percent  int
}

func newSessionProgress(hub *ProgressHub, layerID, sessionID string) *sessionProgress {
	return &sessionProgress{hub: hub, layerID: layerID, sessionID: sessionID}
}

func (s *sessionProgress) report(stage models.Stage, fraction float64) {
	fraction = min(max(fraction, 0), 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if stage < s.stage || (stage == s.stage && fraction < s.fraction) {
		return
	}

	base := 0
	for st := models.StageReconcile; st < stage; st++ {
		base += stageWeights[st]
	}
	percent := max(base+int(float64(stageWeights[stage])*fraction), s.percent)

	s.stage, s.fraction, s.percent = stage, fraction, percent
	s.hub.Publish(models.Progress{
		LayerID:   s.layerID,
		SessionID: s.sessionID,
		Stage:     stage,
		Fraction:  fraction,
		Percent:   percent,
	})
}

// finish publishes the final report. A failed session keeps its percentage.
func (s *sessionProgress) finish(succeeded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if succeeded {
		s.stage, s.fraction, s.percent = models.StageCommit, 1, 100
	}
	s.hub.Publish(models.Progress{
		LayerID:   s.layerID,
		SessionID: s.sessionID,
		Stage:     s.stage,
		Fraction:  s.fraction,
		Percent:   s.percent,
		Done:      true,
	})
}

type progressKey struct{}

// withStage routes reportProgress calls made under ctx to stage.
func withStage(ctx context.Context, p *sessionProgress, stage models.Stage) context.Context {
	p.report(stage, 0)
	return context.WithValue(ctx, progressKey{}, func(f float64) { p.report(stage, f) })
}

// reportProgress records the completed fraction of the current stage.
func reportProgress(ctx context.Context, fraction float64) {
	if fn, ok := ctx.Value(progressKey{}).(func(float64)); ok {
		fn(fraction)
	}
}
