package services

import (
	"fmt"
	"strings"

	"inventory-api/internal/domain"
)

func NewInvalidStatusError(got domain.OrderStatus) *domain.ValidationError {
	names := make([]string, 0, len(domain.OrderStatuses))
	for _, st := range domain.OrderStatuses {
		names = append(names, string(st))
	}
	return &domain.ValidationError{
		Msg: fmt.Sprintf("Invalid status: %s. Must be one of: %s", got, strings.Join(names, ", ")),
	}
}
