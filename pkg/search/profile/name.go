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

package profile

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/searchprof/pkg/search"
)

// deriveName creates a human-friendly representation of the collector's type.
//
// Collectors built inline as unnamed structs (see search.NewMultiCollector)
// have no type name of their own and are named after the first type they
// embed. Aggregation collectors additionally carry their String form, which
// includes the user-defined aggregation name and tells otherwise identical
// stages apart.
func deriveName(c search.Collector, reason Reason) string {
	s := shortTypeName(reflect.TypeOf(c))
	if reason.IsAggregation() {
		s += ": [" + fmt.Sprint(c) + "]"
	}
	return s
}

// shortTypeName returns the unqualified name of t, looking through pointers
// and dropping generic type arguments. Unnamed struct types resolve to the
// name of their first embedded field.
func shortTypeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "nil"
	}
	if name := t.Name(); name != "" {
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		return name
	}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.Anonymous {
				return shortTypeName(f.Type)
			}
		}
	}
	return t.String()
}
