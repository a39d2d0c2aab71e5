// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package viewport

import "golang.org/x/exp/slices"

// SyncXWith makes m share the X axis of master. Writes to X on any synchronized
// model are visible on all others.
func (m *Model) SyncXWith(master *Model) {
	if m.x == master.x {
		return
	}
	m.detach()
	m.x = master.x
	m.x.members = append(m.x.members, m)
	m.x.zoom = master.CalculateZoomX(m.x.start, m.x.end)
	m.fire()
}

// UnsyncX gives m a private copy of the current X axis.
func (m *Model) UnsyncX() {
	if len(m.x.members) == 1 {
		return
	}
	shared := m.x
	m.detach()
	m.x = &xAxis{start: shared.start, end: shared.end, zoom: shared.zoom, members: []*Model{m}}
}

func (m *Model) IsXSynced() bool {
	return len(m.x.members) > 1
}

func (m *Model) detach() {
	m.x.members = slices.DeleteFunc(m.x.members, func(o *Model) bool { return o == m })
}
