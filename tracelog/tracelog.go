// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tracelog adapts fixlat.Tracer to structured zap logging. The
// core engine package never imports a logging library itself; a caller
// that wants visibility into a Generate run passes a *Tracer built here
// via fixlat.WithTracer.
package tracelog

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fixlat"
)

// Tracer logs every fixpoint-loop event at debug level, tagging every
// line with a single run ID so that log lines from one Generate call can
// be correlated in aggregate log storage, and tagging patch and batch
// events with the batch ID the engine itself assigns to each group of
// sibling patches.
type Tracer struct {
	log   *zap.Logger
	runID string
}

// New wraps log as a fixlat.Tracer, minting a fresh run ID to correlate
// every event this Tracer emits.
func New(log *zap.Logger) *Tracer {
	return &Tracer{log: log, runID: uuid.NewString()}
}

var _ fixlat.Tracer = (*Tracer)(nil)

func (t *Tracer) PatchEnqueued(batch fixlat.BatchID, p fixlat.Patch) {
	t.log.Debug("patch enqueued",
		zap.String("run_id", t.runID),
		zap.Int("batch_id", int(batch)),
		zap.String("patch", p.String()),
	)
}

func (t *Tracer) PatchPopped(p fixlat.Patch) {
	t.log.Debug("patch popped",
		zap.String("run_id", t.runID),
		zap.Int("batch_id", int(p.Batch())),
		zap.String("patch", p.String()),
	)
}

func (t *Tracer) FactLearned(p fixlat.GroundProposition, inserted bool) {
	t.log.Debug("fact learned",
		zap.String("run_id", t.runID),
		zap.String("proposition", p.String()),
		zap.Bool("inserted", inserted),
	)
}

func (t *Tracer) BatchStarted(batch fixlat.BatchID, reason string) {
	t.log.Debug("batch started",
		zap.String("run_id", t.runID),
		zap.Int("batch_id", int(batch)),
		zap.String("reason", reason),
	)
}
