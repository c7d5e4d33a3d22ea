package contract

import (
	"context"
	"fmt"

	"github.com/NapaConcierge/concierge-api/internal/types"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

// Store is the audit-log boundary the signing surface writes to.
type Store interface {
	CreateContractSignature(ctx context.Context, sig *types.ContractSignature) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Sign appends a signature record with its audit trail. Records are
// immutable once written.
func (s *Service) Sign(ctx context.Context, req *Request, visitor types.VisitorInfo) (*types.ContractSignature, error) {
	if req.SignerName == "" || req.SignerEmail == "" || req.CompanyName == "" {
		return nil, fmt.Errorf("%w: signer name, signer email and company name are required", types.ErrValidation)
	}

	version := req.ContractVersion
	if version == "" {
		version = "1.0"
	}

	sig := &types.ContractSignature{
		SignerName:      req.SignerName,
		SignerEmail:     req.SignerEmail,
		CompanyName:     req.CompanyName,
		CompanyType:     req.CompanyType,
		ContractVersion: version,
		IPAddress:       utils.Truncate(visitor.IP, 45),
		UserAgent:       utils.Truncate(visitor.UserAgent, 500),
	}
	if err := s.store.CreateContractSignature(ctx, sig); err != nil {
		return nil, err
	}
	return sig, nil
}
