// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package catalog

// Student is a learner known to the platform. Students are immutable values
// constructed by the boundary layer; the catalog never mutates them.
type Student struct {
	ID   string
	Name string
}
