// Copyright 2025 Tom Barlow
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

package server

import (
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket for MCP tool calls. A nil *RateLimiter allows everything.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows callsPerMinute tool calls per minute with a burst of the same size.
// It returns nil when callsPerMinute is zero or negative.
func NewRateLimiter(callsPerMinute int) *RateLimiter {
	if callsPerMinute <= 0 {
		return nil
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(callsPerMinute)), callsPerMinute),
	}
}

// AllowCall checks if any tool call is allowed
func (rl *RateLimiter) AllowCall() bool {
	if rl == nil {
		return true
	}
	return rl.limiter.Allow()
}
