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

package chunk

import (
	"sync"

	"github.com/zyedidia/generic/list"
	"golang.org/x/exp/rand"
)

// BitmapPool recycles the scratch masks built while splitting a batch by
// group. It is sharded to cut lock contention between workers.
type BitmapPool struct {
	shards []bitmapPoolShard
}

// NewBitmapPool creates a BitmapPool with numShards shards.
func NewBitmapPool(numShards int) *BitmapPool {
	if numShards < 1 {
		numShards = 1
	}
	return &BitmapPool{shards: make([]bitmapPoolShard, numShards)}
}

// Get returns a cleared Bitmap of n bits.
func (p *BitmapPool) Get(n int) *Bitmap {
	ordinal := rand.Intn(len(p.shards))
	if b := p.shards[ordinal].get(); b != nil {
		b.reset(n)
		return b
	}
	return NewBitmapWithLength(n, false)
}

// Put returns b to the pool. b must not be used afterwards.
func (p *BitmapPool) Put(b *Bitmap) {
	ordinal := rand.Intn(len(p.shards))
	p.shards[ordinal].put(b)
}

type bitmapPoolShard struct {
	sync.Mutex
	bitmaps *list.List[*Bitmap]
}

func (ps *bitmapPoolShard) put(b *Bitmap) {
	ps.Lock()
	defer ps.Unlock()
	if ps.bitmaps == nil {
		ps.bitmaps = list.New[*Bitmap]()
	}
	ps.bitmaps.PushFront(b)
}

func (ps *bitmapPoolShard) get() *Bitmap {
	ps.Lock()
	defer ps.Unlock()

	if ps.bitmaps == nil || ps.bitmaps.Front == nil {
		return nil
	}
	head := ps.bitmaps.Front
	ps.bitmaps.Remove(head)
	return head.Value
}
