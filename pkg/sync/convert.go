package sync

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/claimsight/dealersync/internal/metrics"
	"github.com/claimsight/dealersync/pkg/source"
	"github.com/claimsight/dealersync/pkg/warehouse"
	"github.com/claimsight/dealersync/pkg/warehouse/dao"
)

// moneyOrNil parses a raw monetary field into a canonical decimal string.
// Unparseable amounts are logged and stored as NULL rather than dropping
// the record.
func moneyOrNil(logger *zap.Logger, raw, field, id string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		logger.Warn("Failed to parse amount",
			zap.String("field", field),
			zap.String("id", id),
			zap.String("value", raw),
			zap.Error(err))
		return nil
	}
	s := d.String()
	return &s
}

func buildClaimRow(logger *zap.Logger, doc source.ClaimDoc) dao.ClaimDao {
	return dao.ClaimDao{
		ClaimID:      doc.ClaimID,
		AgreementID:  doc.AgreementID,
		Status:       string(warehouse.NormalizeStatus(doc.Status)),
		TotalPaid:    moneyOrNil(logger, doc.TotalPaid, "total_paid", doc.ClaimID),
		Odometer:     doc.Odometer,
		OpenDate:     NormalizeTime(doc.OpenDate),
		CloseDate:    NormalizeTime(doc.CloseDate),
		LastModified: doc.LastModified,
	}
}

func buildSubclaimRow(logger *zap.Logger, doc source.SubclaimDoc) dao.SubclaimDao {
	return dao.SubclaimDao{
		ID:        doc.ID.Hex(),
		ClaimID:   doc.ClaimID,
		Hash:      doc.Hash,
		Status:    string(warehouse.NormalizeStatus(doc.Status)),
		Complaint: doc.Complaint,
		TotalCost: moneyOrNil(logger, doc.TotalCost, "total_cost", doc.ID.Hex()),
		PayDate:   NormalizeTime(doc.PayDate),
	}
}

func buildSubclaimPartRow(logger *zap.Logger, doc source.SubclaimPartDoc) dao.SubclaimPartDao {
	return dao.SubclaimPartDao{
		ID:          doc.ID.Hex(),
		SubclaimID:  doc.SubclaimID,
		Hash:        doc.Hash,
		PartNumber:  doc.PartNumber,
		Description: doc.Description,
		Quantity:    doc.Quantity,
		UnitPrice:   moneyOrNil(logger, doc.UnitPrice, "unit_price", doc.ID.Hex()),
	}
}

func buildSurchargePriceRow(logger *zap.Logger, doc source.SurchargePriceDoc) dao.SurchargePriceDao {
	return dao.SurchargePriceDao{
		ID:         doc.ID.Hex(),
		OptionCode: doc.OptionCode,
		PlanCode:   doc.PlanCode,
		Price:      moneyOrNil(logger, doc.Price, "price", doc.ID.Hex()),
		DealerCost: moneyOrNil(logger, doc.DealerCost, "dealer_cost", doc.ID.Hex()),
		Hash:       doc.Hash,
	}
}

// buildAgreementRow transforms a collapsed agreement revision. A dealer
// reference that cannot be resolved falls back to the default dealer key
// with a warning; the record is never dropped.
func buildAgreementRow(logger *zap.Logger, doc source.AgreementDoc, dealerKeys map[string]string, defaultKey string) dao.AgreementDao {
	dealerKey, ok := dealerKeys[normalizePayee(doc.DealerNumber)]
	if !ok {
		logger.Warn("Unresolvable dealer reference, using default dealer",
			zap.String("agreement_id", doc.AgreementID),
			zap.String("dealer_number", doc.DealerNumber))
		metrics.DealerResolutionMisses.Inc()
		dealerKey = defaultKey
	}

	return dao.AgreementDao{
		AgreementID:   doc.AgreementID,
		DealerKey:     dealerKey,
		Status:        string(warehouse.NormalizeStatus(doc.Status)),
		Hash:          doc.Hash,
		IsActive:      true,
		HolderName:    doc.HolderName,
		PlanCode:      doc.PlanCode,
		VIN:           doc.VIN,
		EffectiveDate: NormalizeTime(doc.EffectiveDate),
		ExpireDate:    NormalizeTime(doc.ExpirationDate),
		StatusChanged: EffectiveStatusChange(doc),
	}
}
