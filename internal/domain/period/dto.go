package period

import "time"

const dateLayout = "2006-01-02"

type PeriodPaymentDTO struct {
	PaymentID     string  `json:"payment_id"`
	ExpenseID     string  `json:"expense_id"`
	AccountID     string  `json:"account_id"`
	Title         string  `json:"title"`
	CCName        string  `json:"cc_name,omitempty"`
	AcquiredAt    string  `json:"acquired_at"`
	ExpenseKind   string  `json:"expense_type"`
	ExpenseStatus string  `json:"expense_status"`
	Installments  int     `json:"installments"`
	CategoryID    string  `json:"category_id,omitempty"`
	AccountAlias  string  `json:"account_alias"`
	AccountType   string  `json:"account_type"`
	Enabled       bool    `json:"enabled"`
	Amount        float64 `json:"amount"`
	NoInstallment int     `json:"no_installment"`
	Status        string  `json:"status"`
	PaymentDate   string  `json:"payment_date,omitempty"`
	IsLastPayment bool    `json:"is_last_payment"`
}

func (p PeriodPayment) DTO() PeriodPaymentDTO {
	return PeriodPaymentDTO{
		PaymentID:     p.PaymentID,
		ExpenseID:     p.ExpenseID,
		AccountID:     p.AccountID,
		Title:         p.Title,
		CCName:        p.CCName,
		AcquiredAt:    formatDate(p.AcquiredAt),
		ExpenseKind:   string(p.ExpenseKind),
		ExpenseStatus: string(p.ExpenseStatus),
		Installments:  p.Installments,
		CategoryID:    p.CategoryID,
		AccountAlias:  p.AccountAlias,
		AccountType:   string(p.AccountType),
		Enabled:       p.Enabled,
		Amount:        p.Amount.Float64(),
		NoInstallment: p.NoInstallment,
		Status:        string(p.Status),
		PaymentDate:   formatDate(p.PaymentDate),
		IsLastPayment: p.IsLastPayment,
	}
}

type PeriodDTO struct {
	ID                   string             `json:"id"`
	Month                int                `json:"month"`
	Year                 int                `json:"year"`
	Payments             []PeriodPaymentDTO `json:"payments"`
	TotalPayments        int                `json:"total_payments"`
	TotalAmount          float64            `json:"total_amount"`
	TotalPaidAmount      float64            `json:"total_paid_amount"`
	TotalConfirmedAmount float64            `json:"total_confirmed_amount"`
	TotalPendingAmount   float64            `json:"total_pending_amount"`
}

func (p *Period) DTO() PeriodDTO {
	payments := make([]PeriodPaymentDTO, 0, len(p.Payments))
	for _, row := range p.Payments {
		payments = append(payments, row.DTO())
	}

	return PeriodDTO{
		ID:                   p.ID,
		Month:                p.Month,
		Year:                 p.Year,
		Payments:             payments,
		TotalPayments:        p.TotalPayments(),
		TotalAmount:          p.TotalAmount().Float64(),
		TotalPaidAmount:      p.TotalPaidAmount().Float64(),
		TotalConfirmedAmount: p.TotalConfirmedAmount().Float64(),
		TotalPendingAmount:   p.TotalPendingAmount().Float64(),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
