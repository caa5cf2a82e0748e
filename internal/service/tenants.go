package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

// TenantUpdate holds new contact details. Empty fields keep the old value.
type TenantUpdate struct {
	Name    string
	Phone   string
	Address string
}

// TenantQuery selects tenants. Exactly one field is expected to be set;
// Name matches as a substring, ID and RoomNo match exactly.
type TenantQuery struct {
	Name   string
	ID     string
	RoomNo string
}

// TenantView is what a tenant sees about themselves
type TenantView struct {
	Tenant   dorm.Tenant
	Invoices []dorm.Invoice
}

func tenantFields(t dorm.Tenant) []field {
	return []field{
		{"name", t.Name}, {"phone", t.Phone}, {"citizen id", t.CitizenID},
		{"birth date", t.BirthDate}, {"address", t.Address}, {"room number", t.RoomNo},
	}
}

// AddTenant registers a tenant under a newly generated ID
func (s *Service) AddTenant(ctx context.Context, t dorm.Tenant) (dorm.Tenant, error) {
	if err := required("name", t.Name); err != nil {
		return dorm.Tenant{}, err
	}
	if err := checkFields(tenantFields(t)...); err != nil {
		return dorm.Tenant{}, err
	}
	if t.BirthDate != "" {
		if err := dorm.ValidateDate(t.BirthDate); err != nil {
			return dorm.Tenant{}, err
		}
	}

	tenants, err := load(ctx, s.store.Tenants, "tenants")
	if err != nil {
		return dorm.Tenant{}, err
	}
	idx := dorm.TenantIndex(tenants)
	t.TenantID = s.newID(dorm.TenantPrefix)
	if idx.Has(t.TenantID) {
		return dorm.Tenant{}, duplicate("tenant", t.TenantID)
	}
	idx.Put(t)
	if err := save(ctx, s.store.Tenants, "tenants", idx.Values()); err != nil {
		return dorm.Tenant{}, err
	}
	s.log.Debug("tenant added", zap.String("tenant", t.TenantID))
	return t, nil
}

// EditTenant updates a tenant's contact details
func (s *Service) EditTenant(ctx context.Context, id string, upd TenantUpdate) (dorm.Tenant, error) {
	if err := checkFields(field{"name", upd.Name}, field{"phone", upd.Phone}, field{"address", upd.Address}); err != nil {
		return dorm.Tenant{}, err
	}

	tenants, err := load(ctx, s.store.Tenants, "tenants")
	if err != nil {
		return dorm.Tenant{}, err
	}
	idx := dorm.TenantIndex(tenants)
	ok := idx.Update(id, func(t *dorm.Tenant) {
		if strings.TrimSpace(upd.Name) != "" {
			t.Name = upd.Name
		}
		if strings.TrimSpace(upd.Phone) != "" {
			t.Phone = upd.Phone
		}
		if strings.TrimSpace(upd.Address) != "" {
			t.Address = upd.Address
		}
	})
	if !ok {
		return dorm.Tenant{}, notFound("tenant", id)
	}
	if err := save(ctx, s.store.Tenants, "tenants", idx.Values()); err != nil {
		return dorm.Tenant{}, err
	}
	updated, _ := idx.Get(id)
	return updated, nil
}

// DeleteTenant removes a tenant. Their contracts are left untouched.
func (s *Service) DeleteTenant(ctx context.Context, id string) error {
	tenants, err := load(ctx, s.store.Tenants, "tenants")
	if err != nil {
		return err
	}
	idx := dorm.TenantIndex(tenants)
	if !idx.Delete(id) {
		return notFound("tenant", id)
	}
	return save(ctx, s.store.Tenants, "tenants", idx.Values())
}

// FindTenants returns the tenants matching q, in stored order
func (s *Service) FindTenants(ctx context.Context, q TenantQuery) ([]dorm.Tenant, error) {
	tenants, err := load(ctx, s.store.Tenants, "tenants")
	if err != nil {
		return nil, err
	}
	var match func(dorm.Tenant) bool
	switch {
	case q.ID != "":
		match = func(t dorm.Tenant) bool { return t.TenantID == q.ID }
	case q.RoomNo != "":
		match = func(t dorm.Tenant) bool { return t.RoomNo == q.RoomNo }
	case q.Name != "":
		match = func(t dorm.Tenant) bool { return strings.Contains(t.Name, q.Name) }
	default:
		return nil, required("search term", "")
	}
	var out []dorm.Tenant
	for _, t := range tenants {
		if match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListTenants returns all tenants in stored order
func (s *Service) ListTenants(ctx context.Context) ([]dorm.Tenant, error) {
	return load(ctx, s.store.Tenants, "tenants")
}

// ViewTenant returns a tenant's profile together with the invoices of the
// room they live in. A tenant without a room has no invoices.
func (s *Service) ViewTenant(ctx context.Context, id string) (TenantView, error) {
	tenants, err := load(ctx, s.store.Tenants, "tenants")
	if err != nil {
		return TenantView{}, err
	}
	t, ok := dorm.TenantIndex(tenants).Get(id)
	if !ok {
		return TenantView{}, notFound("tenant", id)
	}
	view := TenantView{Tenant: t}
	if t.RoomNo == "" {
		return view, nil
	}

	invoices, err := load(ctx, s.store.Invoices, "invoices")
	if err != nil {
		return TenantView{}, err
	}
	for _, inv := range invoices {
		if inv.RoomNo == t.RoomNo {
			view.Invoices = append(view.Invoices, inv)
		}
	}
	return view, nil
}
