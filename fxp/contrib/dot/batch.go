// Copyright 2025 go-highway Authors
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

package dot

import (
	"context"
	"fmt"

	"github.com/ajroetker/go-fxaccel/fxp"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/vec"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/workerpool"
)

// MinParallelPairs is the batch size below which ParallelDotBatch runs
// serially.
const MinParallelPairs = 64

// ParallelDotBatch is DotBatch with the pairs distributed across pool. The
// results are identical to DotBatch.
func ParallelDotBatch(pool workerpool.Executor, as, bs []vec.Vector, out fxp.Format, r fxp.Rounding, ov fxp.Overflow) ([]fxp.Number, error) {
	if len(as) != len(bs) {
		return nil, fmt.Errorf("dot batch: %w: %d != %d pairs", vec.ErrDimensionMismatch, len(as), len(bs))
	}
	if len(as) < MinParallelPairs || pool == nil {
		return DotBatch(as, bs, out, r, ov)
	}

	results := make([]fxp.Number, len(as))
	err := pool.ParallelForErr(context.Background(), len(as), func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := Dot(as[i], bs[i], out, r, ov)
			if err != nil {
				return fmt.Errorf("dot batch pair %d: %w", i, err)
			}
			results[i] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
