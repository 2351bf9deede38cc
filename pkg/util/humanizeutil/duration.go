// Copyright 2026 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package humanizeutil

import "time"

// Duration formats a duration in a user-friendly way. The result is not
// exact. Profiled stages are often shorter than a microsecond, so unlike a
// wall-clock report the granularity goes down to nanoseconds there.
//
// Examples:
//
//	0              ->  "0s"
//	850ns          ->  "850ns"
//	123456ns       ->  "123µs"
//	12345678ns     ->  "12ms"
//	12345678912ns  ->  "12.3s"
//	-2ms           ->  "-2ms"
func Duration(val time.Duration) string {
	if val < 0 {
		return "-" + Duration(-val)
	}
	switch {
	case val < time.Microsecond:
		return val.String()
	case val < time.Millisecond:
		return val.Round(time.Microsecond).String()
	case val < time.Second:
		return val.Round(time.Millisecond).String()
	case val < time.Minute:
		// Seconds with one decimal.
		return val.Round(100 * time.Millisecond).String()
	default:
		return val.Round(time.Second).String()
	}
}
