// Copyright 2026 PingCAP, Inc.
//
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

package memory

import (
	"fmt"
	"sync"

	"github.com/docker/go-units"
	"go.uber.org/atomic"
)

// Tracker is used to track the memory usage of an executor. The
// consumption tracked by a Tracker is also tracked by its ancestors.
//
// Consume, BytesConsumed and MaxConsumed are thread-safe. AttachTo must
// be called before the tracker is shared.
type Tracker struct {
	actionMu struct {
		sync.Mutex
		actionOnExceed ActionOnExceed
	}
	parent *Tracker

	label         string
	bytesConsumed atomic.Int64
	bytesLimit    atomic.Int64 // bytesLimit <= 0 means no limit.
	maxConsumed   atomic.Int64
}

// NewTracker creates a memory tracker. "bytesLimit <= 0" means no limit.
func NewTracker(label string, bytesLimit int64) *Tracker {
	t := &Tracker{label: label}
	t.bytesLimit.Store(bytesLimit)
	t.actionMu.actionOnExceed = &LogOnExceed{}
	return t
}

// Label returns the label of t.
func (t *Tracker) Label() string {
	return t.label
}

// SetBytesLimit sets the bytes limit for this tracker.
// "bytesLimit <= 0" means no limit.
func (t *Tracker) SetBytesLimit(bytesLimit int64) {
	t.bytesLimit.Store(bytesLimit)
}

// GetBytesLimit gets the bytes limit for this tracker.
func (t *Tracker) GetBytesLimit() int64 {
	return t.bytesLimit.Load()
}

// CheckExceed checks whether the consumed bytes is exceed for this tracker.
func (t *Tracker) CheckExceed() bool {
	limit := t.bytesLimit.Load()
	return limit > 0 && t.bytesConsumed.Load() >= limit
}

// SetActionOnExceed sets the action when memory usage exceeds bytesLimit.
func (t *Tracker) SetActionOnExceed(a ActionOnExceed) {
	t.actionMu.Lock()
	t.actionMu.actionOnExceed = a
	t.actionMu.Unlock()
}

// AttachTo attaches this memory tracker as a child to another Tracker.
// The consumed bytes of t move to the new parent.
func (t *Tracker) AttachTo(parent *Tracker) {
	if t.parent != nil {
		t.parent.Consume(-t.BytesConsumed())
	}
	t.parent = parent
	parent.Consume(t.BytesConsumed())
}

// Detach detaches this Tracker from its parent.
func (t *Tracker) Detach() {
	if t.parent == nil {
		return
	}
	t.parent.Consume(-t.BytesConsumed())
	t.parent = nil
}

// Consume is used to consume a memory usage. "bytes" can be a negative value,
// which means this is a memory release operation. When memory usage of a tracker
// exceeds its bytesLimit, the tracker calls its action, so does each of its ancestors.
func (t *Tracker) Consume(bytes int64) {
	if bytes == 0 {
		return
	}
	var rootExceed *Tracker
	for tracker := t; tracker != nil; tracker = tracker.parent {
		consumed := tracker.bytesConsumed.Add(bytes)
		if limit := tracker.bytesLimit.Load(); limit > 0 && consumed >= limit {
			rootExceed = tracker
		}
		for {
			maxNow := tracker.maxConsumed.Load()
			if consumed <= maxNow || tracker.maxConsumed.CompareAndSwap(maxNow, consumed) {
				break
			}
		}
	}
	if bytes > 0 && rootExceed != nil {
		rootExceed.actionMu.Lock()
		defer rootExceed.actionMu.Unlock()
		if rootExceed.actionMu.actionOnExceed != nil {
			rootExceed.actionMu.actionOnExceed.Action(rootExceed)
		}
	}
}

// BytesConsumed returns the consumed memory usage value in bytes.
func (t *Tracker) BytesConsumed() int64 {
	return t.bytesConsumed.Load()
}

// MaxConsumed returns max number of bytes consumed during execution.
func (t *Tracker) MaxConsumed() int64 {
	return t.maxConsumed.Load()
}

// String implements fmt.Stringer interface.
func (t *Tracker) String() string {
	consumed := units.BytesSize(float64(t.BytesConsumed()))
	if limit := t.bytesLimit.Load(); limit > 0 {
		return fmt.Sprintf("%s{consumed: %s, quota: %s}", t.label, consumed, units.BytesSize(float64(limit)))
	}
	return fmt.Sprintf("%s{consumed: %s}", t.label, consumed)
}
