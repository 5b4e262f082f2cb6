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
	"testing"

	"github.com/docker/go-units"
	"github.com/stretchr/testify/require"
)

func TestConsume(t *testing.T) {
	tracker := NewTracker("agg", -1)
	require.Equal(t, "agg", tracker.Label())
	tracker.Consume(100)
	tracker.Consume(-40)
	tracker.Consume(0)
	require.Equal(t, int64(60), tracker.BytesConsumed())
	require.Equal(t, int64(100), tracker.MaxConsumed())
	require.False(t, tracker.CheckExceed())
	require.Equal(t, "agg{consumed: 60B}", tracker.String())
}

func TestAttachTo(t *testing.T) {
	parent := NewTracker("parent", -1)
	child := NewTracker("child", -1)
	child.Consume(10)
	child.AttachTo(parent)
	require.Equal(t, int64(10), parent.BytesConsumed())

	child.Consume(5)
	require.Equal(t, int64(15), parent.BytesConsumed())

	other := NewTracker("other", -1)
	child.AttachTo(other)
	require.Equal(t, int64(0), parent.BytesConsumed())
	require.Equal(t, int64(15), other.BytesConsumed())

	child.Detach()
	require.Equal(t, int64(0), other.BytesConsumed())
	child.Detach()
}

func TestActionOnExceed(t *testing.T) {
	parent := NewTracker("parent", 100)
	child := NewTracker("child", -1)
	child.AttachTo(parent)

	var exceeded []string
	parent.SetActionOnExceed(ActionFunc(func(t *Tracker) {
		exceeded = append(exceeded, t.Label())
	}))
	child.Consume(99)
	require.Empty(t, exceeded)
	child.Consume(1)
	require.Equal(t, []string{"parent"}, exceeded)
	require.True(t, parent.CheckExceed())
	// Releases never trigger the action.
	child.Consume(-50)
	require.Len(t, exceeded, 1)
	require.Equal(t, "parent{consumed: 50B, quota: 100B}", parent.String())

	// The default action only logs once.
	log := NewTracker("log", 1)
	log.Consume(2)
	log.Consume(2)
	require.True(t, log.CheckExceed())
}

func TestTrackerStringUnits(t *testing.T) {
	tracker := NewTracker("agg", 2*units.GiB)
	tracker.Consume(units.MiB + units.MiB/2)
	require.Equal(t, "agg{consumed: 1.5MiB, quota: 2GiB}", tracker.String())
	tracker.Consume(-units.MiB)
	require.Equal(t, "agg{consumed: 512KiB, quota: 2GiB}", tracker.String())
}
