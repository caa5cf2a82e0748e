package dorm

// ApplyContractCreated marks the contract's room occupied and assigns the
// room to the contract's tenant. Rooms already occupied by another contract
// are not rejected. The input slices are not modified.
func ApplyContractCreated(c Contract, rooms []Room, tenants []Tenant) ([]Room, []Tenant) {
	outRooms := append([]Room(nil), rooms...)
	for i := range outRooms {
		if outRooms[i].RoomNo == c.RoomNo {
			outRooms[i].Status = RoomOccupied
			break
		}
	}

	outTenants := append([]Tenant(nil), tenants...)
	for i := range outTenants {
		if outTenants[i].TenantID == c.TenantID {
			outTenants[i].RoomNo = c.RoomNo
		}
	}
	return outRooms, outTenants
}

// ApplyContractRemoved recomputes room and tenant state from the remaining
// contracts. Every room referenced by a contract is Occupied and every other
// room, Maintenance included, is Available. Tenants that no
// contract names lose their room assignment. The result depends only on
// the inputs, so applying it repeatedly is a no-op.
func ApplyContractRemoved(contracts []Contract, rooms []Room, tenants []Tenant) ([]Room, []Tenant) {
	occupied := make(map[string]bool, len(contracts))
	contracted := make(map[string]bool, len(contracts))
	for _, c := range contracts {
		occupied[c.RoomNo] = true
		contracted[c.TenantID] = true
	}

	outRooms := make([]Room, len(rooms))
	for i, r := range rooms {
		if occupied[r.RoomNo] {
			r.Status = RoomOccupied
		} else {
			r.Status = RoomAvailable
		}
		outRooms[i] = r
	}

	outTenants := make([]Tenant, len(tenants))
	for i, t := range tenants {
		if !contracted[t.TenantID] {
			t.RoomNo = ""
		}
		outTenants[i] = t
	}
	return outRooms, outTenants
}
