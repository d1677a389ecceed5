package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/revisapp/internal/client/client"
	"github.com/dmitrijs2005/revisapp/internal/client/diagnostics"
	"github.com/dmitrijs2005/revisapp/internal/client/models"
	"github.com/dmitrijs2005/revisapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/revisapp/internal/common"
)

const maxCEPDigits = 8

// WorkshopService backs the dashboard: workshop search and the one-time
// welcome message.
type WorkshopService interface {
	FindWorkshops(ctx context.Context, cep string) ([]models.Workshop, error)
	// FirstVisit is true once per login; the flag is reset by Logout.
	FirstVisit(ctx context.Context) (bool, error)
}

type workshopService struct {
	dir   client.Directory
	store kv.Store
	diag  *diagnostics.Collector
}

func NewWorkshopService(dir client.Directory, store kv.Store, diag *diagnostics.Collector) WorkshopService {
	if diag == nil {
		diag = diagnostics.NewCollector(context.Background(), nil, nil, 0)
	}
	return &workshopService{dir: dir, store: store, diag: diag}
}

func (w *workshopService) FindWorkshops(ctx context.Context, cep string) ([]models.Workshop, error) {
	shops, err := w.dir.FindWorkshops(ctx, cep)
	if err != nil {
		w.diag.Error(context.WithoutCancel(ctx), "An error occurred while fetching workshops", err)
		if !errors.Is(err, client.ErrAPI) && !errors.Is(err, client.ErrNetwork) {
			err = fmt.Errorf("%w: %w", client.ErrAPI, err)
		}
		return nil, err
	}
	return shops, nil
}

func (w *workshopService) FirstVisit(ctx context.Context) (bool, error) {
	v, err := w.store.Get(ctx, kv.KeyFirstVisit)
	if err != nil {
		return false, fmt.Errorf("read first visit flag: %w", err)
	}
	if v != nil {
		return false, nil
	}
	if err := w.store.Set(ctx, kv.KeyFirstVisit, []byte("false")); err != nil {
		return false, fmt.Errorf("save first visit flag: %w", err)
	}
	return true, nil
}

// FormatCEP masks s as a Brazilian postal code: digits only, at most eight,
// with a hyphen after the fifth once a sixth is present.
func FormatCEP(s string) string {
	d := common.DigitsOnly(s)
	if len(d) > maxCEPDigits {
		d = d[:maxCEPDigits]
	}
	if len(d) > 5 {
		return d[:5] + "-" + d[5:]
	}
	return d
}
