/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package audit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/telekom/moodmail/pkg/config"
	"github.com/telekom/moodmail/pkg/metrics"
)

// sinkWriteTimeout bounds a single sink write so a stuck sink cannot stall
// the queue forever.
const sinkWriteTimeout = 5 * time.Second

// Recorder decouples request handling from audit sink latency. Events are
// enqueued non-blocking; a single background worker writes them to the
// configured sink. When the queue is full the event is dropped and counted,
// never blocking the caller.
type Recorder struct {
	sink  Sink
	queue chan *Event
	log   *zap.Logger

	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewRecorder builds the configured sink chain and starts the queue worker.
// With auditing disabled it returns a recorder that silently discards every
// event, so callers never need a nil check.
func NewRecorder(cfg config.Audit, logger *zap.Logger) (*Recorder, error) {
	if !cfg.Enabled {
		return &Recorder{}, nil
	}

	names := strings.Split(cfg.Sink, ",")
	sinks := make([]Sink, 0, len(names))
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case "", "log":
			sinks = append(sinks, NewLogSink(logger))
		case "kafka":
			sink, err := NewKafkaSink(cfg.Kafka, logger)
			if err != nil {
				return nil, fmt.Errorf("building kafka audit sink: %w", err)
			}
			sinks = append(sinks, sink)
		case "webhook":
			sink, err := NewWebhookSink(cfg.Webhook, logger)
			if err != nil {
				return nil, fmt.Errorf("building webhook audit sink: %w", err)
			}
			sinks = append(sinks, sink)
		default:
			return nil, fmt.Errorf("unknown audit sink %q", name)
		}
	}

	var sink Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else {
		sink = NewMultiSink(sinks, logger)
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}

	return newRecorderWithSink(sink, queueSize, logger), nil
}

func newRecorderWithSink(sink Sink, queueSize int, logger *zap.Logger) *Recorder {
	r := &Recorder{
		sink:  sink,
		queue: make(chan *Event, queueSize),
		log:   logger.Named("audit-recorder"),
	}
	r.wg.Add(1)
	go r.drain()

	r.log.Info("audit recorder started",
		zap.String("sink", sink.Name()),
		zap.Int("queue_size", queueSize))

	return r
}

// Record enqueues an event for asynchronous delivery. Never blocks: with a
// full queue the event is dropped and counted instead.
func (r *Recorder) Record(event *Event) {
	if r.queue == nil || r.closed.Load() {
		return
	}

	select {
	case r.queue <- event:
	default:
		metrics.AuditEventsDropped.Inc()
		r.log.Warn("audit queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
	}
}

func (r *Recorder) drain() {
	defer r.wg.Done()

	for event := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sinkWriteTimeout)
		err := r.sink.Write(ctx, event)
		cancel()

		if err != nil {
			r.log.Error("failed to write audit event",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.String("error", err.Error()))
			continue
		}
		metrics.AuditEventsEmitted.WithLabelValues(r.sink.Name()).Inc()
	}
}

// Close stops accepting events, drains the queue and closes the sink.
func (r *Recorder) Close() error {
	if r.queue == nil {
		return nil
	}
	if r.closed.Swap(true) {
		return nil
	}

	close(r.queue)
	r.wg.Wait()
	return r.sink.Close()
}
