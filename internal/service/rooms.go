package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

// RoomUpdate holds new values for a room. Empty fields keep the old value.
type RoomUpdate struct {
	Type   string
	Status string
}

// AddRoom registers a new room. An empty status means Available.
func (s *Service) AddRoom(ctx context.Context, r dorm.Room) (dorm.Room, error) {
	r.RoomNo = strings.TrimSpace(r.RoomNo)
	if err := required("room number", r.RoomNo); err != nil {
		return dorm.Room{}, err
	}
	if err := checkFields(field{"room number", r.RoomNo}, field{"type", r.Type}); err != nil {
		return dorm.Room{}, err
	}
	if r.Status == "" {
		r.Status = dorm.RoomAvailable
	} else {
		st, err := dorm.ParseRoomStatus(string(r.Status))
		if err != nil {
			return dorm.Room{}, err
		}
		r.Status = st
	}

	rooms, err := load(ctx, s.store.Rooms, "rooms")
	if err != nil {
		return dorm.Room{}, err
	}
	idx := dorm.RoomIndex(rooms)
	if idx.Has(r.RoomNo) {
		return dorm.Room{}, duplicate("room", r.RoomNo)
	}
	idx.Put(r)
	if err := save(ctx, s.store.Rooms, "rooms", idx.Values()); err != nil {
		return dorm.Room{}, err
	}
	s.log.Debug("room added", zap.String("room", r.RoomNo))
	return r, nil
}

// EditRoom changes the type or status of a room
func (s *Service) EditRoom(ctx context.Context, roomNo string, upd RoomUpdate) (dorm.Room, error) {
	if err := checkFields(field{"type", upd.Type}); err != nil {
		return dorm.Room{}, err
	}
	var status dorm.RoomStatus
	if strings.TrimSpace(upd.Status) != "" {
		st, err := dorm.ParseRoomStatus(strings.TrimSpace(upd.Status))
		if err != nil {
			return dorm.Room{}, err
		}
		status = st
	}

	rooms, err := load(ctx, s.store.Rooms, "rooms")
	if err != nil {
		return dorm.Room{}, err
	}
	idx := dorm.RoomIndex(rooms)
	ok := idx.Update(roomNo, func(r *dorm.Room) {
		if strings.TrimSpace(upd.Type) != "" {
			r.Type = upd.Type
		}
		if status != "" {
			r.Status = status
		}
	})
	if !ok {
		return dorm.Room{}, notFound("room", roomNo)
	}
	if err := save(ctx, s.store.Rooms, "rooms", idx.Values()); err != nil {
		return dorm.Room{}, err
	}
	updated, _ := idx.Get(roomNo)
	return updated, nil
}

// DeleteRoom removes every room with the given number
func (s *Service) DeleteRoom(ctx context.Context, roomNo string) error {
	rooms, err := load(ctx, s.store.Rooms, "rooms")
	if err != nil {
		return err
	}
	idx := dorm.RoomIndex(rooms)
	if !idx.Delete(roomNo) {
		return notFound("room", roomNo)
	}
	return save(ctx, s.store.Rooms, "rooms", idx.Values())
}

// ListRooms returns all rooms in stored order
func (s *Service) ListRooms(ctx context.Context) ([]dorm.Room, error) {
	return load(ctx, s.store.Rooms, "rooms")
}
