package account

import "cardledger-go/internal/domain/expense"

type AccountDTO struct {
	ID         string               `json:"id"`
	UserID     string               `json:"user_id"`
	Alias      string               `json:"alias"`
	CCName     string               `json:"cc_name,omitempty"`
	Type       string               `json:"account_type"`
	Enabled    bool                 `json:"enabled"`
	ExpenseIDs []string             `json:"expense_ids,omitempty"`
	Expenses   []expense.ExpenseDTO `json:"expenses,omitempty"`
}

// DTO returns the serialized account. Deep mode expands nested
// expenses (and their payments) fully; shallow mode reduces them to
// identifiers.
func (a Account) DTO(deep bool) AccountDTO {
	dto := AccountDTO{
		ID:      a.ID,
		UserID:  a.UserID,
		Alias:   a.Alias,
		CCName:  a.CCName,
		Type:    string(a.Type),
		Enabled: a.Enabled,
	}

	if deep {
		dto.Expenses = make([]expense.ExpenseDTO, 0, len(a.Expenses))
		for i := range a.Expenses {
			dto.Expenses = append(dto.Expenses, a.Expenses[i].DTO(true))
		}
		return dto
	}

	dto.ExpenseIDs = make([]string, 0, len(a.Expenses))
	for _, e := range a.Expenses {
		dto.ExpenseIDs = append(dto.ExpenseIDs, e.ID)
	}
	return dto
}
