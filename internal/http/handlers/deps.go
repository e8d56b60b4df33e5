package handlers

import (
	"github.com/jmoiron/sqlx"

	"stockroom/internal/repos"
	"stockroom/internal/services"
)

type Deps struct {
	InventoryHandler *InventoryHandler
	OrderHandler     *OrderHandler
	PaymentHandler   *PaymentHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	invRepo := repos.NewInventoryRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	payRepo := repos.NewPaymentRepo(db)
	prodRepo := repos.NewProductRepo(db)
	addrRepo := repos.NewAddressRepo(db)

	invSvc := services.NewInventoryService(invRepo)
	orderSvc := services.NewOrderService(orderRepo, invRepo, prodRepo, addrRepo, services.LogNotifier{})
	paySvc := services.NewPaymentService(payRepo, orderSvc)

	return &Deps{
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc, Repo: orderRepo},
		PaymentHandler:   &PaymentHandler{Pay: paySvc},
		AdminHandler:     &AdminHandler{Order: orderSvc, Repo: orderRepo, Inv: invRepo},
	}
}
