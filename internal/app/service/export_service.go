package service

import (
	"fmt"
	"strings"

	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportService produces XLSX reports for the admin panel.
type ExportService interface {
	ExportOrders() (*excelize.File, error)
}

type exportService struct {
	orderRepo repository.OrderRepository
}

func NewExportService(orderRepo repository.OrderRepository) ExportService {
	return &exportService{orderRepo: orderRepo}
}

// ExportOrders renders every order as one spreadsheet row with its items
// summarized in a single cell.
func (s *exportService) ExportOrders() (*excelize.File, error) {
	logger.Info("Exporting orders to XLSX", nil)

	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Orders"
	f.SetSheetName(f.GetSheetName(0), sheetName)

	headers := []string{"Order ID", "Customer", "Email", "Status", "Total Amount", "Items", "Shipping City", "Created At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, order := range orders {
		itemParts := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			itemParts = append(itemParts, fmt.Sprintf("%s x%d", item.Product.Name, item.Quantity))
		}

		city := ""
		if order.Address != nil {
			city = order.Address.City
		}

		values := []interface{}{
			order.ID,
			fmt.Sprintf("%s %s", order.User.FirstName, order.User.LastName),
			order.User.Email,
			string(order.Status),
			order.TotalAmount.String(),
			strings.Join(itemParts, ", "),
			city,
			order.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Orders exported successfully", map[string]interface{}{
		"count": len(orders),
	})
	return f, nil
}
