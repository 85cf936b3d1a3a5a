package response

// BillingRunResponse carries the per-invoice outcomes of one batch run, in
// the order the pending invoices were snapshotted.

type BillingRunResponse struct {
	ChargedInvoices int      `json:"charged_invoices"`
	Results         []string `json:"results"`
}

func FromBillingRun(results []string) BillingRunResponse {
	return BillingRunResponse{ChargedInvoices: len(results), Results: results}
}
