package http

import "library-rental-backend/internal/domain"

func MapDomainRentalToResponse(r *domain.Rental) RentalResponse {
	return RentalResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		BorrowerID: r.BorrowerID,
		RentalDate: r.RentalDate,
		DueDate:    r.DueDate,
		ReturnDate: r.ReturnDate,
		Status:     string(r.Status),
	}
}

func MapDomainRentalsToPage(rentals []domain.Rental, total int32, filter domain.RentalFilter) RentalPageResponse {
	items := make([]RentalResponse, 0, len(rentals))
	for i := range rentals {
		items = append(items, MapDomainRentalToResponse(&rentals[i]))
	}
	return RentalPageResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
}

func MapInventoryReportToResponse(r *domain.InventoryReport) InventoryResponse {
	return InventoryResponse{
		BookID:          r.BookID,
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.AvailableCopies,
		Outstanding:     r.Outstanding,
		Consistent:      r.Consistent,
	}
}

func MapDomainRuleToResponse(r *domain.RentalRule) RentalRuleResponse {
	return RentalRuleResponse{
		Name:      r.Name,
		Value:     r.Value,
		UpdatedOn: r.UpdatedOn,
	}
}
