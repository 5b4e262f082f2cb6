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

package aggregate

import (
	"slices"

	"github.com/dolthub/swiss"
	"github.com/flowsql/flowsql/executor/aggfuncs"
	"github.com/flowsql/flowsql/metrics"
	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
	"github.com/flowsql/flowsql/util/memory"
	"github.com/pingcap/errors"
	"github.com/pingcap/failpoint"
)

// rowCounter is implemented by the row count state every executor keeps
// as its first aggregate.
type rowCounter interface {
	Count() int64
}

// aggGroup holds the states of one group key.
type aggGroup struct {
	key    []types.Datum
	states []aggfuncs.StreamingAggState
	// prevOutputs is the last emitted output row, nil if the group has
	// never been emitted.
	prevOutputs []types.Datum
	dirty       bool
}

func newAggGroup(key []types.Datum, descs []*aggfuncs.AggFuncDesc, checkpoints []types.Datum) (*aggGroup, error) {
	g := &aggGroup{key: key, states: make([]aggfuncs.StreamingAggState, 0, len(descs))}
	for i, desc := range descs {
		var ckpt types.Datum
		if checkpoints != nil {
			ckpt = checkpoints[i]
		}
		s, err := aggfuncs.Build(desc, ckpt)
		if err != nil {
			return nil, err
		}
		g.states = append(g.states, s)
	}
	return g, nil
}

func (g *aggGroup) rowCount() int64 {
	return g.states[0].(rowCounter).Count()
}

// outputs returns the current output of every state, using one reusable
// builder per state.
func (g *aggGroup) outputs(builders []chunk.Builder) ([]types.Datum, error) {
	res := make([]types.Datum, 0, len(g.states))
	for i, s := range g.states {
		if err := s.GetOutput(builders[i]); err != nil {
			return nil, err
		}
		res = append(res, builders[i].Finish().GetDatum(0))
	}
	return res, nil
}

func (g *aggGroup) memoryUsage() int64 {
	var size int64
	for _, s := range g.states {
		if m, ok := s.(aggfuncs.MemoryUsager); ok {
			size += m.MemoryUsage()
		}
	}
	return size
}

func (g *aggGroup) stateDatums() []types.Datum {
	states := make([]types.Datum, 0, len(g.states))
	for _, s := range g.states {
		states = append(states, s.ToDatum())
	}
	return states
}

func (g *aggGroup) checkpoint() GroupCheckpoint {
	return GroupCheckpoint{Key: g.key, States: g.stateDatums()}
}

// groupRows are the visible rows of a batch that belong to one group.
type groupRows struct {
	key    string
	datums []types.Datum
	rows   []int
}

// partitionBatch is the slice of a batch routed to one partition, with
// groups in order of first appearance.
type partitionBatch struct {
	index  map[string]int
	groups []*groupRows
}

func newPartitionBatch() *partitionBatch {
	return &partitionBatch{index: make(map[string]int)}
}

func (b *partitionBatch) add(key []byte, datums []types.Datum, row int) {
	if i, ok := b.index[string(key)]; ok {
		b.groups[i].rows = append(b.groups[i].rows, row)
		return
	}
	k := string(key)
	b.index[k] = len(b.groups)
	b.groups = append(b.groups, &groupRows{key: k, datums: slices.Clone(datums), rows: []int{row}})
}

// stagedGroup is a group touched by the batch being applied. A group
// created by the batch only joins the partition on commit; an existing one
// keeps a snapshot of its states to roll back to.
type stagedGroup struct {
	key       string
	group     *aggGroup
	created   bool
	snapshot  []types.Datum
	memBefore int64
}

// hashAggPartition owns a disjoint subset of the groups. Only one worker
// touches a partition at a time.
type hashAggPartition struct {
	groups *swiss.Map[string, *aggGroup]
	// dirty lists the keys changed since the last flush.
	dirty []string
	// staged lists the groups of the batch being applied.
	staged     []stagedGroup
	stats      *HashAggRuntimeStats
	memTracker *memory.Tracker
}

func newHashAggPartition(stats *HashAggRuntimeStats, memTracker *memory.Tracker) *hashAggPartition {
	return &hashAggPartition{groups: swiss.NewMap[string, *aggGroup](64), stats: stats, memTracker: memTracker}
}

func (p *hashAggPartition) markDirty(key string, g *aggGroup) {
	if !g.dirty {
		g.dirty = true
		p.dirty = append(p.dirty, key)
	}
}

func (p *hashAggPartition) evict(key string, g *aggGroup) {
	p.groups.Delete(key)
	p.memTracker.Consume(-g.memoryUsage())
	p.stats.GroupsEvicted.Inc()
	metrics.StreamAggGroupsGauge.Dec()
}

func (p *hashAggPartition) put(key string, g *aggGroup) {
	p.groups.Put(key, g)
	p.memTracker.Consume(g.memoryUsage())
	p.stats.GroupsCreated.Inc()
	metrics.StreamAggGroupsGauge.Inc()
}

// apply folds the rows of b into the groups of p. Each group sees the
// batch through its own mask: the batch visibility restricted to the rows
// of its key. The changes stay staged until commit or rollback.
func (p *hashAggPartition) apply(ops chunk.Ops, b *partitionBatch, args [][]chunk.Column,
	descs []*aggfuncs.AggFuncDesc, pool *chunk.BitmapPool) error {
	failpoint.Inject("hashAggPartitionError", func(val failpoint.Value) {
		if val.(bool) {
			failpoint.Return(errors.New("mock hash agg partition error"))
		}
	})
	for _, gr := range b.groups {
		sg := stagedGroup{key: gr.key}
		if g, ok := p.groups.Get(gr.key); ok {
			sg.group, sg.snapshot, sg.memBefore = g, g.stateDatums(), g.memoryUsage()
		} else {
			g, err := newAggGroup(gr.datums, descs, nil)
			if err != nil {
				return err
			}
			sg.group, sg.created = g, true
		}
		p.staged = append(p.staged, sg)
		mask := pool.Get(len(ops))
		for _, row := range gr.rows {
			mask.Set(row, true)
		}
		for i, s := range sg.group.states {
			if err := s.ApplyBatch(ops, mask, args[i]); err != nil {
				pool.Put(mask)
				return err
			}
		}
		pool.Put(mask)
	}
	return nil
}

// commit publishes the staged groups of p.
func (p *hashAggPartition) commit() {
	for _, sg := range p.staged {
		if sg.created {
			p.put(sg.key, sg.group)
		} else {
			p.memTracker.Consume(sg.group.memoryUsage() - sg.memBefore)
		}
		p.markDirty(sg.key, sg.group)
	}
	p.staged = p.staged[:0]
}

// rollback restores the staged groups of p to their state before the
// batch. Groups created by the batch are dropped.
func (p *hashAggPartition) rollback(descs []*aggfuncs.AggFuncDesc) error {
	defer func() {
		p.staged = p.staged[:0]
	}()
	for _, sg := range p.staged {
		if sg.created {
			continue
		}
		states := make([]aggfuncs.StreamingAggState, 0, len(descs))
		for i, desc := range descs {
			s, err := aggfuncs.Build(desc, sg.snapshot[i])
			if err != nil {
				return errors.Trace(err)
			}
			states = append(states, s)
		}
		sg.group.states = states
	}
	return nil
}
