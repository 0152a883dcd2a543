package sales

import (
	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// ToSaleResponse mapea una venta a su DTO.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:            s.ID,
		Date:          s.Date,
		Items:         toItemResponses(s.Items),
		SellingResume: toResumeResponse(s.SellingResume),
	}
}

func toItemResponses(items []entity.BatchSaleItem) []dto.SaleItemResponse {
	out := make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SaleItemResponse{
			ProductID:              it.ProductID,
			ProductName:            it.ProductName,
			Quantity:               it.Quantity,
			UnitPrice:              it.UnitPrice,
			Subtotal:               it.Subtotal,
			IsBatchSale:            it.IsBatchSale,
			BatchYieldQuantity:     it.BatchYieldQuantity,
			BatchSoldQuantity:      it.BatchSoldQuantity,
			BatchRemainingQuantity: it.BatchRemainingQuantity,
			ProportionalCost:       it.ProportionalCost,
		})
	}
	return out
}

func toResumeResponse(r entity.SellingResume) dto.SellingResumeResponse {
	return dto.SellingResumeResponse{
		PaymentMethod:  string(r.PaymentMethod),
		Subtotal:       r.Subtotal,
		DiscountType:   string(r.DiscountType),
		DiscountValue:  r.DiscountValue,
		DiscountAmount: r.DiscountAmount,
		FeePercentage:  r.FeePercentage,
		Fees:           r.Fees,
		TotalValue:     r.TotalValue,
		TotalCost:      r.TotalCost,
		Profit:         r.Profit,
	}
}
