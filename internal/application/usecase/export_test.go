package usecase

import "time"

// SetClock fija el reloj en tests.
func (uc *OrganizationUseCase) SetClock(now func() time.Time) { uc.now = now }

// SetClock fija el reloj en tests.
func (uc *StockHistoryUseCase) SetClock(now func() time.Time) { uc.now = now }
