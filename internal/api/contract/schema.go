package contract

// Request carries a signed service agreement. No auth: signing happens
// before a tenant exists.
type Request struct {
	SignerName      string `json:"signerName"`
	SignerEmail     string `json:"signerEmail"`
	CompanyName     string `json:"companyName"`
	CompanyType     string `json:"companyType"` // winery | hotel | restaurant | tour | other
	ContractVersion string `json:"contractVersion"`
}

// Response is a minimal ack payload
type Response struct {
	ID      int64 `json:"id"`
	Success bool  `json:"success"`
}
