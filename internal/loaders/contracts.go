package loaders

import (
	"context"
	"fmt"

	"github.com/NapaConcierge/concierge-api/internal/types"
)

// CreateContractSignature appends a signed-agreement audit record.
// Signatures are never mutated or deleted.
func (c *PostgresClient) CreateContractSignature(ctx context.Context, sig *types.ContractSignature) error {
	query := `
		INSERT INTO contract_signatures (
			signer_name, signer_email, company_name, company_type, contract_version, ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, signed_at
	`

	err := c.pool.QueryRow(ctx, query,
		sig.SignerName, sig.SignerEmail, sig.CompanyName, sig.CompanyType,
		sig.ContractVersion, sig.IPAddress, sig.UserAgent,
	).Scan(&sig.ID, &sig.SignedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract signature: %w", err)
	}
	return nil
}

func (c *PostgresClient) ListContractSignatures(ctx context.Context) ([]types.ContractSignature, error) {
	query := `
		SELECT id, signer_name, signer_email, company_name, company_type,
		       contract_version, signed_at, ip_address, user_agent
		FROM contract_signatures
		ORDER BY signed_at DESC
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract signatures: %w", err)
	}
	defer rows.Close()

	var sigs []types.ContractSignature
	for rows.Next() {
		var s types.ContractSignature
		if err := rows.Scan(
			&s.ID, &s.SignerName, &s.SignerEmail, &s.CompanyName, &s.CompanyType,
			&s.ContractVersion, &s.SignedAt, &s.IPAddress, &s.UserAgent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contract signature row: %w", err)
		}
		sigs = append(sigs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract signatures: %w", err)
	}
	return sigs, nil
}
