package response

import "github.com/ddelliosRJ/antaeus/internal/domain/entities"

type CustomerResponse struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
}

func FromCustomer(c entities.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Currency: string(c.Currency)}
}

func FromCustomers(customers []entities.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, FromCustomer(c))
	}
	return out
}
