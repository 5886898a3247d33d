package dayclosing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/uow"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// GetAvailableCashiers lists active cashiers and flags those already opened on the date.
func (u *Usecase) GetAvailableCashiers(ctx context.Context, businessDate time.Time) CashiersResult {
	date, err := requireDate(businessDate)
	if err != nil {
		return CashiersResult{Result: u.failure("GetAvailableCashiers", nil, err)}
	}
	data := map[string]any{"business_date": dateKey(date)}

	users, err := u.repos.Users.ListActiveByRoleNames(ctx, u.policy.CashierRoles)
	if err != nil {
		return CashiersResult{Result: u.failure("GetAvailableCashiers", data, err)}
	}
	openings, err := u.repos.Openings.ListByDate(ctx, date)
	if err != nil {
		return CashiersResult{Result: u.failure("GetAvailableCashiers", data, err)}
	}
	opened := make(map[uint64]bool, len(openings))
	for _, o := range openings {
		if o.IsActive {
			opened[o.CashierID] = true
		}
	}

	out := make([]AvailableCashier, 0, len(users))
	for i := range users {
		usr := &users[i]
		out = append(out, AvailableCashier{
			ID:                 usr.ID,
			Name:               usr.DisplayName(),
			Username:           usr.Username,
			AlreadyInitialized: opened[usr.ID],
		})
	}
	return CashiersResult{
		Result:   success(fmt.Sprintf("%d cashier(s) available", len(out))),
		Cashiers: out,
	}
}

func validateOpening(in OpeningInput) (time.Time, string, error) {
	date, err := requireDate(in.BusinessDate)
	if err != nil {
		return date, "", err
	}
	if in.CashierID == 0 {
		return date, "", dayclose.Invalid("cashier_id", "is required")
	}
	if in.OpeningFloat.IsNegative() {
		return date, "", dayclose.Invalid("opening_float", "must be greater than or equal to 0")
	}
	actor, err := requireActor("actor", in.Actor)
	return date, actor, err
}

// InitializeDayOpening records a cashier's starting float and creates the matching PENDING close row.
func (u *Usecase) InitializeDayOpening(ctx context.Context, in OpeningInput) OpeningResult {
	date, actor, err := validateOpening(in)
	if err != nil {
		return OpeningResult{Result: u.failure("InitializeDayOpening", nil, err)}
	}
	data := map[string]any{"business_date": dateKey(date), "cashier_id": in.CashierID}

	var res OpeningResult
	err = u.withinDate(ctx, date, func(r uow.Repos) error {
		if err := ensureDateOpen(ctx, r, date); err != nil {
			return err
		}
		user, err := u.cashier(ctx, r, in.CashierID)
		if err != nil {
			return err
		}

		opening, err := r.Openings.FindByDateAndCashier(ctx, date, in.CashierID)
		if errors.Is(err, dayclose.ErrOpeningNotFound) {
			opening, err = nil, nil
		}
		if err != nil {
			return err
		}
		row, err := r.Closes.FindByDateAndCashier(ctx, date, in.CashierID)
		if errors.Is(err, dayclose.ErrRecordNotFound) {
			row, err = nil, nil
		}
		if err != nil {
			return err
		}
		if row != nil {
			if row.IsLocked() {
				return dayclose.ErrAlreadyLocked
			}
			if row.DeclaredAmount != nil {
				return fmt.Errorf("%w: cash already declared for cashier %d", dayclose.ErrDuplicateOpening, in.CashierID)
			}
		}

		now := u.now()
		float := dayclose.Money(in.OpeningFloat)
		name := user.DisplayName()

		if opening != nil {
			if !u.policy.AllowOpeningOverwrite {
				return fmt.Errorf("%w: cashier %d on %s", dayclose.ErrDuplicateOpening, in.CashierID, dateKey(date))
			}
			opening.CashierName = name
			opening.OpeningFloat = float
			opening.IsActive = true
			opening.UpdatedBy = &actor
			opening.UpdatedAt = &now
			if err := r.Openings.Save(ctx, opening); err != nil {
				return err
			}
			res.Overwritten = true
		} else {
			opening = &dayclose.DayOpening{
				BusinessDate: date,
				CashierID:    in.CashierID,
				CashierName:  name,
				OpeningFloat: float,
				CreatedBy:    actor,
				CreatedAt:    now,
				IsActive:     true,
			}
			if err := r.Openings.Create(ctx, opening); err != nil {
				return err
			}
		}

		if row == nil {
			row = &dayclose.DayClose{
				BusinessDate: date,
				CashierID:    in.CashierID,
				CashierName:  name,
				SystemAmount: decimal.Zero,
				OpeningFloat: float,
				Status:       dayclose.StatusPending,
				CreatedBy:    actor,
				CreatedAt:    now,
			}
			if err := r.Closes.Create(ctx, row); err != nil {
				return err
			}
		} else {
			row.CashierName = name
			if err := row.ApplyOpeningFloat(float, actor, now); err != nil {
				return err
			}
			if err := r.Closes.Save(ctx, row); err != nil {
				return err
			}
		}

		res.Opening = opening
		res.CloseID = row.ID
		return nil
	})
	if err != nil {
		return OpeningResult{Result: u.failure("InitializeDayOpening", data, err)}
	}

	u.log.WithFields(logrus.Fields{
		"module":        moduleName,
		"business_date": dateKey(date),
		"cashier_id":    in.CashierID,
		"overwritten":   res.Overwritten,
		"actor":         actor,
	}).Info("day opening initialized")

	res.Result = success(fmt.Sprintf("opening float %s recorded for %s", res.Opening.OpeningFloat.StringFixed(2), res.Opening.CashierName))
	return res
}

// UpdateOpeningFloat corrects the float of an existing opening before cash is declared.
func (u *Usecase) UpdateOpeningFloat(ctx context.Context, in OpeningInput) OpeningResult {
	date, actor, err := validateOpening(in)
	if err != nil {
		return OpeningResult{Result: u.failure("UpdateOpeningFloat", nil, err)}
	}
	data := map[string]any{"business_date": dateKey(date), "cashier_id": in.CashierID}

	var res OpeningResult
	err = u.withinDate(ctx, date, func(r uow.Repos) error {
		if err := ensureDateOpen(ctx, r, date); err != nil {
			return err
		}
		opening, err := r.Openings.FindByDateAndCashier(ctx, date, in.CashierID)
		if err != nil {
			return err
		}
		row, err := r.Closes.FindByDateAndCashier(ctx, date, in.CashierID)
		if errors.Is(err, dayclose.ErrRecordNotFound) {
			row, err = nil, nil
		}
		if err != nil {
			return err
		}

		now := u.now()
		float := dayclose.Money(in.OpeningFloat)
		if row != nil {
			if err := row.ApplyOpeningFloat(float, actor, now); err != nil {
				return err
			}
			if err := r.Closes.Save(ctx, row); err != nil {
				return err
			}
		} else {
			// opening without a close row: recreate it
			row = &dayclose.DayClose{
				BusinessDate: date,
				CashierID:    in.CashierID,
				CashierName:  opening.CashierName,
				SystemAmount: decimal.Zero,
				OpeningFloat: float,
				Status:       dayclose.StatusPending,
				CreatedBy:    actor,
				CreatedAt:    now,
			}
			if err := r.Closes.Create(ctx, row); err != nil {
				return err
			}
		}

		opening.OpeningFloat = float
		opening.UpdatedBy = &actor
		opening.UpdatedAt = &now
		if err := r.Openings.Save(ctx, opening); err != nil {
			return err
		}
		res.Opening = opening
		res.CloseID = row.ID
		res.Overwritten = true
		return nil
	})
	if err != nil {
		return OpeningResult{Result: u.failure("UpdateOpeningFloat", data, err)}
	}
	res.Result = success(fmt.Sprintf("opening float updated to %s", res.Opening.OpeningFloat.StringFixed(2)))
	return res
}
