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
	"context"
	"fmt"
	"time"

	"github.com/dgryski/go-farm"
	"github.com/flowsql/flowsql/config"
	"github.com/flowsql/flowsql/executor/aggfuncs"
	"github.com/flowsql/flowsql/metrics"
	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
	"github.com/flowsql/flowsql/util/codec"
	"github.com/flowsql/flowsql/util/logutil"
	"github.com/flowsql/flowsql/util/memory"
	"github.com/google/uuid"
	"github.com/pingcap/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GroupCheckpoint is the persisted form of one group: its key and the
// ToDatum output of each state.
type GroupCheckpoint struct {
	Key    []types.Datum
	States []types.Datum
}

// Option configures a HashAggExecutor.
type Option func(*HashAggExecutor)

// WithConcurrency sets the number of partitions.
func WithConcurrency(n int) Option {
	return func(e *HashAggExecutor) {
		e.concurrency = n
	}
}

// WithChunkSize sets the maximum number of rows of a flushed chunk.
func WithChunkSize(n int) Option {
	return func(e *HashAggExecutor) {
		e.chunkSize = n
	}
}

// WithMemQuota sets the memory quota of the group states. A non-positive
// quota means no limit; exceeding it is logged.
func WithMemQuota(bytes int64) Option {
	return func(e *HashAggExecutor) {
		e.memTracker.SetBytesLimit(bytes)
	}
}

// HashAggExecutor maintains grouped aggregates over a changelog stream.
// Groups are hashed to partitions, and the partitions of a batch are
// applied in parallel. Apply and Flush must not be called concurrently.
type HashAggExecutor struct {
	id          uuid.UUID
	logger      *zap.Logger
	inputTypes  []types.DataType
	groupBy     []int
	descs       []*aggfuncs.AggFuncDesc
	outputTypes []types.DataType

	concurrency int
	chunkSize   int
	partitions  []*hashAggPartition
	bitmapPool  *chunk.BitmapPool
	// outputBuilders are reused by Flush, one per aggregate.
	outputBuilders []chunk.Builder
	rowsCounters   [][]prometheus.Counter
	keyBuf         []byte

	stats      *HashAggRuntimeStats
	memTracker *memory.Tracker
}

// NewHashAggExecutor creates a HashAggExecutor grouping the input by the
// groupBy columns. The first aggregate must be a row count; it decides
// when a group appears and disappears. checkpoints restore the groups of
// a previous Checkpoint.
func NewHashAggExecutor(inputTypes []types.DataType, groupBy []int, descs []*aggfuncs.AggFuncDesc,
	checkpoints []GroupCheckpoint, opts ...Option) (*HashAggExecutor, error) {
	conf := config.GetGlobalConfig()
	id := uuid.New()
	e := &HashAggExecutor{
		id:          id,
		logger:      logutil.BgLogger().With(zap.String(logutil.LogFieldCategory, "hash-agg"), zap.Stringer("executor", id)),
		inputTypes:  inputTypes,
		groupBy:     groupBy,
		descs:       descs,
		concurrency: conf.Stream.AggConcurrency,
		chunkSize:   conf.Stream.ChunkSize,
		stats:       &HashAggRuntimeStats{},
		memTracker:  memory.NewTracker("HashAggExecutor_"+id.String(), conf.Stream.AggMemQuota),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.init(); err != nil {
		return nil, err
	}
	if err := e.restore(checkpoints); err != nil {
		e.Close()
		return nil, err
	}
	e.logger.Debug("hash agg executor created",
		zap.Int("concurrency", e.concurrency),
		zap.Ints("groupBy", groupBy),
		zap.Stringers("aggs", descs),
		zap.Int("restoredGroups", e.NumGroups()),
		zap.Stringer("memTracker", e.memTracker))
	return e, nil
}

func (e *HashAggExecutor) init() error {
	if e.concurrency < 1 || e.chunkSize < 1 {
		return config.ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("concurrency %d and chunk size %d must be positive", e.concurrency, e.chunkSize))
	}
	if len(e.descs) == 0 || e.descs[0].Kind != aggfuncs.AggRowCount {
		return aggfuncs.ErrInvalidAggCall.GenWithStackByArgs("the first aggregate of a hash aggregation must be row_count")
	}
	e.outputTypes = make([]types.DataType, 0, len(e.groupBy)+len(e.descs))
	for _, col := range e.groupBy {
		if col < 0 || col >= len(e.inputTypes) {
			return aggfuncs.ErrInvalidAggCall.GenWithStackByArgs(
				fmt.Sprintf("group by column %d out of range, input has %d columns", col, len(e.inputTypes)))
		}
		e.outputTypes = append(e.outputTypes, e.inputTypes[col])
	}
	for _, desc := range e.descs {
		if len(desc.Args) != len(desc.ArgTypes) {
			return aggfuncs.ErrInvalidAggCall.GenWithStackByArgs(
				fmt.Sprintf("%s has %d arguments and %d argument types", desc, len(desc.Args), len(desc.ArgTypes)))
		}
		for i, arg := range desc.Args {
			if arg < 0 || arg >= len(e.inputTypes) || e.inputTypes[arg].Kind() != desc.ArgTypes[i].Kind() {
				return aggfuncs.ErrInvalidAggCall.GenWithStackByArgs(
					fmt.Sprintf("%s does not fit the input columns", desc))
			}
		}
		e.outputTypes = append(e.outputTypes, desc.ReturnType)
		e.outputBuilders = append(e.outputBuilders, chunk.NewBuilder(desc.ReturnType, 1))
		counters := make([]prometheus.Counter, 0, 4)
		for _, op := range []chunk.Op{chunk.OpInsert, chunk.OpDelete, chunk.OpUpdateDelete, chunk.OpUpdateInsert} {
			counters = append(counters, metrics.StreamAggRowsCounter.WithLabelValues(desc.Kind.String(), op.String()))
		}
		e.rowsCounters = append(e.rowsCounters, counters)
	}
	e.partitions = make([]*hashAggPartition, 0, e.concurrency)
	for range e.concurrency {
		e.partitions = append(e.partitions, newHashAggPartition(e.stats, e.memTracker))
	}
	e.bitmapPool = chunk.NewBitmapPool(e.concurrency)
	return nil
}

func (e *HashAggExecutor) restore(checkpoints []GroupCheckpoint) error {
	for _, cp := range checkpoints {
		if len(cp.Key) != len(e.groupBy) || len(cp.States) != len(e.descs) {
			return ErrInvalidCheckpoint.GenWithStackByArgs(
				fmt.Sprintf("group has %d keys and %d states, expected %d and %d",
					len(cp.Key), len(cp.States), len(e.groupBy), len(e.descs)))
		}
		for i, d := range cp.Key {
			if !types.LiteralTypeMatch(e.outputTypes[i], d) {
				return ErrInvalidCheckpoint.GenWithStackByArgs(
					fmt.Sprintf("group key %s does not match %s", d, e.outputTypes[i]))
			}
		}
		g, err := newAggGroup(cp.Key, e.descs, cp.States)
		if err != nil {
			return err
		}
		// An empty group would never be flushed again, so it is not restored.
		if g.rowCount() == 0 {
			continue
		}
		// A restored group has been emitted with its current outputs.
		if g.prevOutputs, err = g.outputs(e.outputBuilders); err != nil {
			return err
		}
		e.keyBuf = codec.EncodeKey(e.keyBuf[:0], cp.Key...)
		e.partitions[e.partitionOf(e.keyBuf)].put(string(e.keyBuf), g)
	}
	if len(checkpoints) > 0 {
		e.logger.Info("hash agg executor restored", zap.Int("checkpoints", len(checkpoints)), zap.Int("groups", e.NumGroups()))
	}
	return nil
}

func (e *HashAggExecutor) partitionOf(key []byte) int {
	return int(farm.Hash64(key) % uint64(len(e.partitions)))
}

// OutputTypes returns the types of the flushed rows: the group keys
// followed by the aggregate outputs.
func (e *HashAggExecutor) OutputTypes() []types.DataType {
	return e.outputTypes
}

// NumGroups returns the number of live groups.
func (e *HashAggExecutor) NumGroups() int {
	n := 0
	for _, p := range e.partitions {
		n += p.groups.Count()
	}
	return n
}

// MemTracker returns the tracker of the memory held by the group states.
func (e *HashAggExecutor) MemTracker() *memory.Tracker {
	return e.memTracker
}

// ID returns the identifier of e, which tags its logs and memory tracker.
func (e *HashAggExecutor) ID() uuid.UUID {
	return e.id
}

// Stats returns the runtime statistics of e.
func (e *HashAggExecutor) Stats() *HashAggRuntimeStats {
	return e.stats
}

// checkBatch rejects a batch with an unknown op or with columns that do
// not match the input types.
func (e *HashAggExecutor) checkBatch(chk *chunk.StreamChunk) error {
	for i, op := range chk.Ops() {
		if !op.Valid() {
			return aggfuncs.ErrMalformedBatch.GenWithStackByArgs(fmt.Sprintf("row %d has unknown op %s", i, op))
		}
	}
	if len(chk.Columns()) != len(e.inputTypes) {
		return aggfuncs.ErrMalformedBatch.GenWithStackByArgs(
			fmt.Sprintf("batch has %d columns, expected %d", len(chk.Columns()), len(e.inputTypes)))
	}
	for i, col := range chk.Columns() {
		if col == nil || col.Len() != chk.Capacity() || col.DataType().Kind() != e.inputTypes[i].Kind() {
			return aggfuncs.ErrMalformedBatch.GenWithStackByArgs(
				fmt.Sprintf("column %d does not match %s", i, e.inputTypes[i]))
		}
	}
	return nil
}

// Apply folds a changelog batch into the groups. Either the whole batch is
// applied or, on error, no group changes.
func (e *HashAggExecutor) Apply(ctx context.Context, chk *chunk.StreamChunk) (err error) {
	start := time.Now()
	defer func() {
		metrics.StreamAggApplyDuration.WithLabelValues(metrics.RetLabel(err)).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.StreamAggErrorCounter.WithLabelValues(metrics.ErrorToLabel(err)).Inc()
			logutil.Logger(ctx).Warn("hash agg apply failed", zap.Stringer("executor", e.id), zap.Error(err))
		}
	}()
	if err = e.checkBatch(chk); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return errors.Trace(err)
	}

	ops, vis := chk.Ops(), chk.Visibility()
	batches := make([]*partitionBatch, len(e.partitions))
	keyDatums := make([]types.Datum, len(e.groupBy))
	var opCounts [4]int64
	for row, op := range ops.VisibleRows(vis) {
		for i, col := range e.groupBy {
			keyDatums[i] = chk.Column(col).GetDatum(row)
		}
		e.keyBuf = codec.EncodeKey(e.keyBuf[:0], keyDatums...)
		idx := e.partitionOf(e.keyBuf)
		if batches[idx] == nil {
			batches[idx] = newPartitionBatch()
		}
		batches[idx].add(e.keyBuf, keyDatums, row)
		opCounts[op-chunk.OpInsert]++
	}

	args := make([][]chunk.Column, 0, len(e.descs))
	for _, desc := range e.descs {
		cols := make([]chunk.Column, 0, len(desc.Args))
		for _, arg := range desc.Args {
			cols = append(cols, chk.Column(arg))
		}
		args = append(args, cols)
	}

	var eg errgroup.Group
	for i, b := range batches {
		if b == nil {
			continue
		}
		p := e.partitions[i]
		eg.Go(func() error {
			return p.apply(ops, b, args, e.descs, e.bitmapPool)
		})
	}
	if err = eg.Wait(); err != nil {
		for i, b := range batches {
			if b != nil {
				err = multierr.Append(err, e.partitions[i].rollback(e.descs))
			}
		}
		return err
	}
	for i, b := range batches {
		if b != nil {
			e.partitions[i].commit()
		}
	}

	var visible int64
	for i, n := range opCounts {
		visible += n
		if n == 0 {
			continue
		}
		for _, counters := range e.rowsCounters {
			counters[i].Add(float64(n))
		}
	}
	e.stats.Batches.Inc()
	e.stats.Rows.Add(visible)
	return nil
}

// Flush emits the changes of the groups touched since the last flush:
// Insert for a new group, an UpdateDelete/UpdateInsert pair for a changed
// group and Delete for a group whose row count dropped to zero, which is
// evicted. Chunks hold at most the configured chunk size rows, and an
// update pair is never split.
func (e *HashAggExecutor) Flush() ([]*chunk.StreamChunk, error) {
	var (
		res     []*chunk.StreamChunk
		evicted int
	)
	builder := chunk.NewStreamChunkBuilder(e.outputTypes, e.chunkSize)
	row := make([]types.Datum, len(e.outputTypes))
	emit := func(g *aggGroup, outputs []types.Datum, ops ...chunk.Op) {
		if builder.Len() > 0 && builder.Len()+len(ops) > e.chunkSize {
			res = append(res, builder.Take())
		}
		copy(row, g.key)
		for _, op := range ops {
			if op == chunk.OpUpdateDelete || op == chunk.OpDelete {
				copy(row[len(g.key):], g.prevOutputs)
			} else {
				copy(row[len(g.key):], outputs)
			}
			builder.Append(op, row...)
		}
	}
	for _, p := range e.partitions {
		for _, key := range p.dirty {
			g, ok := p.groups.Get(key)
			if !ok {
				continue
			}
			g.dirty = false
			if g.rowCount() == 0 {
				if g.prevOutputs != nil {
					emit(g, nil, chunk.OpDelete)
				}
				p.evict(key, g)
				evicted++
				continue
			}
			outputs, err := g.outputs(e.outputBuilders)
			if err != nil {
				return nil, err
			}
			switch {
			case g.prevOutputs == nil:
				emit(g, outputs, chunk.OpInsert)
			case !equalDatums(g.prevOutputs, outputs):
				emit(g, outputs, chunk.OpUpdateDelete, chunk.OpUpdateInsert)
			}
			g.prevOutputs = outputs
		}
		p.dirty = p.dirty[:0]
	}
	if c := builder.Take(); c != nil {
		res = append(res, c)
	}
	e.stats.Flushes.Inc()
	if evicted > 0 {
		e.logger.Debug("hash agg groups evicted", zap.Int("evicted", evicted), zap.Int("groups", e.NumGroups()))
	}
	return res, nil
}

// Checkpoint returns every live group. It is meant to follow a Flush: the
// restored groups are treated as already emitted.
func (e *HashAggExecutor) Checkpoint() []GroupCheckpoint {
	res := make([]GroupCheckpoint, 0, e.NumGroups())
	for _, p := range e.partitions {
		p.groups.Iter(func(_ string, g *aggGroup) bool {
			res = append(res, g.checkpoint())
			return false
		})
	}
	return res
}

// Close releases the groups of e.
func (e *HashAggExecutor) Close() {
	for _, p := range e.partitions {
		metrics.StreamAggGroupsGauge.Sub(float64(p.groups.Count()))
		p.groups.Clear()
		p.dirty = nil
	}
	e.memTracker.Consume(-e.memTracker.BytesConsumed())
	e.memTracker.Detach()
}

func equalDatums(a, b []types.Datum) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
