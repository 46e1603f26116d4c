package expense

import "time"

const dateLayout = "2006-01-02"

// DTOs are the stable serialized form of the aggregates: money as
// plain decimal numbers, dates as ISO-8601 strings, enums as their
// string value.

type PaymentDTO struct {
	ID            string  `json:"id"`
	ExpenseID     string  `json:"expense_id"`
	Amount        float64 `json:"amount"`
	NoInstallment int     `json:"no_installment"`
	Status        string  `json:"status"`
	PaymentDate   string  `json:"payment_date,omitempty"`
	IsLastPayment bool    `json:"is_last_payment"`
}

func (p Payment) DTO() PaymentDTO {
	return PaymentDTO{
		ID:            p.ID,
		ExpenseID:     p.ExpenseID,
		Amount:        p.Amount.Float64(),
		NoInstallment: p.NoInstallment,
		Status:        string(p.Status),
		PaymentDate:   formatDate(p.PaymentDate),
		IsLastPayment: p.IsLastPayment,
	}
}

type ExpenseDTO struct {
	ID               string       `json:"id"`
	AccountID        string       `json:"account_id"`
	Title            string       `json:"title"`
	CCName           string       `json:"cc_name,omitempty"`
	AcquiredAt       string       `json:"acquired_at"`
	Amount           float64      `json:"amount"`
	Kind             string       `json:"expense_type"`
	Installments     int          `json:"installments"`
	FirstPaymentDate string       `json:"first_payment_date,omitempty"`
	Status           string       `json:"status"`
	CategoryID       string       `json:"category_id,omitempty"`
	PaymentIDs       []string     `json:"payment_ids,omitempty"`
	Payments         []PaymentDTO `json:"payments,omitempty"`
}

// DTO returns the serialized form of the expense. Deep mode expands the
// nested payments fully; shallow mode reduces them to their IDs.
func (e *Expense) DTO(deep bool) ExpenseDTO {
	dto := ExpenseDTO{
		ID:               e.ID,
		AccountID:        e.AccountID,
		Title:            e.Title,
		CCName:           e.CCName,
		AcquiredAt:       formatDate(e.AcquiredAt),
		Amount:           e.Amount.Float64(),
		Kind:             string(e.Kind),
		Installments:     e.Installments,
		FirstPaymentDate: formatDate(e.FirstPaymentDate),
		Status:           string(e.Status),
		CategoryID:       e.CategoryID,
	}

	if deep {
		dto.Payments = make([]PaymentDTO, 0, len(e.Payments))
		for _, p := range e.Payments {
			dto.Payments = append(dto.Payments, p.DTO())
		}
		return dto
	}

	dto.PaymentIDs = make([]string, 0, len(e.Payments))
	for _, p := range e.Payments {
		dto.PaymentIDs = append(dto.PaymentIDs, p.ID)
	}
	return dto
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
