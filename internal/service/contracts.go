package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/store"
)

// ContractUpdate holds new contract terms. Empty or nil fields keep the old
// value.
type ContractUpdate struct {
	EndDate     string
	RoomPrice   *float64
	InternetFee *float64
}

// occupancy is the working set every contract change touches
type occupancy struct {
	contracts []dorm.Contract
	rooms     []dorm.Room
	tenants   []dorm.Tenant
}

func (s *Service) loadOccupancy(ctx context.Context) (*occupancy, error) {
	contracts, err := load(ctx, s.store.Contracts, "contracts")
	if err != nil {
		return nil, err
	}
	rooms, err := load(ctx, s.store.Rooms, "rooms")
	if err != nil {
		return nil, err
	}
	tenants, err := load(ctx, s.store.Tenants, "tenants")
	if err != nil {
		return nil, err
	}
	return &occupancy{contracts: contracts, rooms: rooms, tenants: tenants}, nil
}

// saveOccupancy persists contracts, rooms and tenants together
func (s *Service) saveOccupancy(ctx context.Context, o *occupancy) error {
	return store.SaveAll(ctx,
		store.Put("contracts", s.store.Contracts, o.contracts),
		store.Put("rooms", s.store.Rooms, o.rooms),
		store.Put("tenants", s.store.Tenants, o.tenants),
	)
}

func validateTerms(start, end string, roomPrice, internetFee float64) error {
	if err := dorm.ValidateDate(start); err != nil {
		return err
	}
	if err := dorm.ValidateDate(end); err != nil {
		return err
	}
	if end < start {
		return fmt.Errorf("%w: end date %s is before start date %s", dorm.ErrInvalidInput, end, start)
	}
	if roomPrice < 0 || internetFee < 0 {
		return fmt.Errorf("%w: fees must not be negative", dorm.ErrInvalidInput)
	}
	return nil
}

// AddContract binds a tenant to a room. The room becomes Occupied and the
// tenant is assigned to it. A room that is already occupied is not refused.
func (s *Service) AddContract(ctx context.Context, c dorm.Contract) (dorm.Contract, error) {
	c.TenantID = strings.TrimSpace(c.TenantID)
	c.RoomNo = strings.TrimSpace(c.RoomNo)
	if err := required("tenant id", c.TenantID); err != nil {
		return dorm.Contract{}, err
	}
	if err := required("room number", c.RoomNo); err != nil {
		return dorm.Contract{}, err
	}
	if err := validateTerms(c.StartDate, c.EndDate, c.RoomPrice, c.InternetFee); err != nil {
		return dorm.Contract{}, err
	}

	o, err := s.loadOccupancy(ctx)
	if err != nil {
		return dorm.Contract{}, err
	}
	if !dorm.TenantIndex(o.tenants).Has(c.TenantID) {
		return dorm.Contract{}, notFound("tenant", c.TenantID)
	}
	room, ok := dorm.RoomIndex(o.rooms).Get(c.RoomNo)
	if !ok {
		return dorm.Contract{}, notFound("room", c.RoomNo)
	}
	if room.Status == dorm.RoomOccupied {
		s.log.Warn("room already occupied", zap.String("room", c.RoomNo))
	}

	c.ContractID = s.newID(dorm.ContractPrefix)
	contracts := dorm.ContractIndex(o.contracts)
	if contracts.Has(c.ContractID) {
		return dorm.Contract{}, duplicate("contract", c.ContractID)
	}
	contracts.Put(c)
	o.contracts = contracts.Values()
	o.rooms, o.tenants = dorm.ApplyContractCreated(c, o.rooms, o.tenants)

	if err := s.saveOccupancy(ctx, o); err != nil {
		return dorm.Contract{}, err
	}
	s.log.Info("contract added",
		zap.String("contract", c.ContractID),
		zap.String("tenant", c.TenantID),
		zap.String("room", c.RoomNo))
	return c, nil
}

// EditContract changes the end date or fees of a contract. Invoices already
// issued keep their amounts.
func (s *Service) EditContract(ctx context.Context, id string, upd ContractUpdate) (dorm.Contract, error) {
	contracts, err := load(ctx, s.store.Contracts, "contracts")
	if err != nil {
		return dorm.Contract{}, err
	}
	idx := dorm.ContractIndex(contracts)
	current, ok := idx.Get(id)
	if !ok {
		return dorm.Contract{}, notFound("contract", id)
	}

	next := current
	if end := strings.TrimSpace(upd.EndDate); end != "" {
		if err := dorm.ValidateDate(end); err != nil {
			return dorm.Contract{}, err
		}
		if end < next.StartDate {
			return dorm.Contract{}, fmt.Errorf("%w: end date %s is before start date %s", dorm.ErrInvalidInput, end, next.StartDate)
		}
		next.EndDate = end
	}
	if upd.RoomPrice != nil {
		next.RoomPrice = *upd.RoomPrice
	}
	if upd.InternetFee != nil {
		next.InternetFee = *upd.InternetFee
	}
	if next.RoomPrice < 0 || next.InternetFee < 0 {
		return dorm.Contract{}, fmt.Errorf("%w: fees must not be negative", dorm.ErrInvalidInput)
	}

	idx.Update(id, func(c *dorm.Contract) { *c = next })
	if err := save(ctx, s.store.Contracts, "contracts", idx.Values()); err != nil {
		return dorm.Contract{}, err
	}
	return next, nil
}

// EndContract removes a contract and reconciles room and tenant state with
// the contracts that remain.
func (s *Service) EndContract(ctx context.Context, id string) error {
	o, err := s.loadOccupancy(ctx)
	if err != nil {
		return err
	}
	idx := dorm.ContractIndex(o.contracts)
	if !idx.Delete(id) {
		return notFound("contract", id)
	}
	o.contracts = idx.Values()
	o.rooms, o.tenants = dorm.ApplyContractRemoved(o.contracts, o.rooms, o.tenants)

	if err := s.saveOccupancy(ctx, o); err != nil {
		return err
	}
	s.log.Info("contract ended", zap.String("contract", id))
	return nil
}

// ListContracts returns all contracts in stored order
func (s *Service) ListContracts(ctx context.Context) ([]dorm.Contract, error) {
	return load(ctx, s.store.Contracts, "contracts")
}
