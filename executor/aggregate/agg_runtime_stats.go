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
	"fmt"

	"go.uber.org/atomic"
)

// HashAggRuntimeStats collects statistics of a HashAggExecutor. Partition
// workers update it concurrently.
type HashAggRuntimeStats struct {
	Batches       atomic.Int64
	Rows          atomic.Int64
	GroupsCreated atomic.Int64
	GroupsEvicted atomic.Int64
	Flushes       atomic.Int64
}

// String implements fmt.Stringer interface.
func (s *HashAggRuntimeStats) String() string {
	return fmt.Sprintf("batches:%d, rows:%d, groups:{created:%d, evicted:%d}, flushes:%d",
		s.Batches.Load(), s.Rows.Load(), s.GroupsCreated.Load(), s.GroupsEvicted.Load(), s.Flushes.Load())
}
