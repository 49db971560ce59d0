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
	"errors"
	"fmt"

	"github.com/ajroetker/go-fxaccel/fxp"
)

// ErrConfig reports an invalid pipeline configuration.
var ErrConfig = errors.New("dot: invalid config")

// Config is the elaboration-time configuration of a Pipeline.
type Config struct {
	// N is the vector length.
	N int

	// Input is the format of both operand vectors.
	Input fxp.Format

	// Output is the format the accumulator is resized to.
	Output fxp.Format

	// Rounding and Overflow apply to the single output resize.
	Rounding fxp.Rounding
	Overflow fxp.Overflow

	// Lanes is the number of multipliers, i.e. products folded per tick.
	Lanes int
}

// DefaultConfig returns a two-element, single-lane Q8.8 pipeline that
// rounds to nearest (ties away) and saturates.
func DefaultConfig() Config {
	return Config{
		N:        2,
		Input:    fxp.Q(16, 8),
		Output:   fxp.Q(16, 8),
		Rounding: fxp.NearestAway,
		Overflow: fxp.Saturate,
		Lanes:    1,
	}
}

// Validate checks c and that its accumulator fits in 64 bits.
func (c Config) Validate() error {
	if c.N < 1 {
		return fmt.Errorf("%w: N must be >= 1, got %d", ErrConfig, c.N)
	}
	if c.Lanes < 1 {
		return fmt.Errorf("%w: lanes must be >= 1, got %d", ErrConfig, c.Lanes)
	}
	if !c.Input.Valid() || !c.Output.Valid() {
		return fmt.Errorf("%w: input %v, output %v", ErrConfig, c.Input, c.Output)
	}
	if _, err := c.Accumulator(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

// Accumulator returns AccumulatorFormat(c.Input, c.N).
func (c Config) Accumulator() (fxp.Format, error) {
	return AccumulatorFormat(c.Input, c.N)
}

// Latency returns the number of ticks from an accepted Start to Done.
func (c Config) Latency() int {
	return (c.N + c.Lanes - 1) / c.Lanes
}
