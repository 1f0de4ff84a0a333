package usecase

import (
	"fmt"
	"time"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// DateLayout is the date format the backend expects.
const DateLayout = "2006-01-02"

const (
	MsgNoData            = "No data available."
	MsgNoServiceData     = "No service cost data available."
	MsgNoTagData         = "No data available for selected filters."
	MsgNoBudgets         = "No budgets found for the selected account."
	MsgAllFieldsRequired = "All fields are required"
	MsgPasswordTooShort  = "Password must be at least 8 characters."
	MsgPasswordMismatch  = "Passwords do not match."
)

// ViewState is the outcome of a view fetch.
type ViewState int

const (
	StateData ViewState = iota
	StateEmpty
	StateError
)

func (s ViewState) String() string {
	switch s {
	case StateData:
		return "data"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("ViewState(%d)", int(s))
}

// DateRange is an inclusive YYYY-MM-DD window.
type DateRange struct {
	Start string
	End   string
}

// LastDays returns the window ending today and starting days earlier.
func LastDays(now time.Time, days int) DateRange {
	return DateRange{
		Start: now.AddDate(0, 0, -days).Format(DateLayout),
		End:   now.Format(DateLayout),
	}
}

// Validate checks both dates parse and start is not after end.
func (r DateRange) Validate() error {
	start, err := time.Parse(DateLayout, r.Start)
	if err != nil {
		return types.NewValidationError("start date %q must be YYYY-MM-DD", r.Start)
	}
	end, err := time.Parse(DateLayout, r.End)
	if err != nil {
		return types.NewValidationError("end date %q must be YYYY-MM-DD", r.End)
	}
	if start.After(end) {
		return types.NewValidationError("start date %s is after end date %s", r.Start, r.End)
	}
	return nil
}

func costRequest(acc *entity.AwsAccount, dates DateRange, region string) entity.CostRequest {
	return entity.CostRequest{
		AccessKey: acc.AccessKey,
		SecretKey: acc.SecretKey,
		Start:     dates.Start,
		End:       dates.End,
		Region:    region,
	}
}
