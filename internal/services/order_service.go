package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ReceiptSubject is the subject line of every order receipt.
const ReceiptSubject = "Your order receipt"

// OrderLine is one requested product and quantity.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// PlaceOrderInput is a validated order intake request. TotalPrice is the
// client's own figure and only appears in the receipt.
type PlaceOrderInput struct {
	FullName   string
	Email      string
	Phone      string
	Address    string
	TotalPrice decimal.Decimal
	Lines      []OrderLine
}

// ReceiptNotifier delivers a receipt to the buyer.
type ReceiptNotifier interface {
	Notify(ctx context.Context, receipt models.Receipt) error
}

// OrderService turns carts into persisted order lines and sends receipts.
type OrderService struct {
	products repositories.ProductRepository
	cards    repositories.ProductCardRepository
	notifier ReceiptNotifier
	shopName string
	now      func() time.Time
	wg       sync.WaitGroup
}

// NewOrderService creates a new OrderService.
func NewOrderService(products repositories.ProductRepository, cards repositories.ProductCardRepository, notifier ReceiptNotifier, shopName string) *OrderService {
	return &OrderService{
		products: products,
		cards:    cards,
		notifier: notifier,
		shopName: shopName,
		now:      time.Now,
	}
}

// PlaceOrder resolves every product, stores all lines in one transaction and
// dispatches the receipt in the background. Nothing is stored if any product
// is unknown. Prices are snapshotted onto the lines.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) ([]models.ProductCard, error) {
	if len(in.Lines) == 0 {
		return nil, apperrors.FieldError("product_data", "This list may not be empty.")
	}

	byID, err := s.lookup(in.Lines)
	if err != nil {
		return nil, err
	}

	cards := make([]models.ProductCard, 0, len(in.Lines))
	for _, line := range in.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, apperrors.NotFound("Product not found")
		}
		productID := product.ID
		cards = append(cards, models.ProductCard{
			ProductID:  &productID,
			Quantity:   line.Quantity,
			TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
			PriceType:  product.PriceType,
			FullName:   in.FullName,
			Phone:      in.Phone,
			Email:      in.Email,
			Address:    in.Address,
		})
	}

	if err := s.cards.CreateAll(cards); err != nil {
		return nil, err
	}
	metrics.ObserveOrder(len(cards))

	// The receipt reads the catalog again after the write.
	current, err := s.lookup(in.Lines)
	if err != nil {
		logrus.WithError(err).WithField("email", in.Email).Error("Failed to build receipt")
		return cards, nil
	}
	receipt := s.BuildReceipt(in, current)
	s.dispatch(context.WithoutCancel(ctx), receipt)

	return cards, nil
}

func (s *OrderService) lookup(lines []OrderLine) (map[uint]models.Product, error) {
	ids := make([]uint, 0, len(lines))
	seen := make(map[uint]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}
	products, err := s.products.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// BuildReceipt renders the plain-text receipt for an order.
func (s *OrderService) BuildReceipt(in PlaceOrderInput, products map[uint]models.Product) models.Receipt {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello, %s!\n\n", in.FullName)
	b.WriteString("Thank you for your order.\n")
	fmt.Fprintf(&b, "Phone: %s\n", in.Phone)
	fmt.Fprintf(&b, "Date: %s\n\n", s.now().Format("2006-01-02 15:04"))
	b.WriteString("Items:\n")
	for _, line := range in.Lines {
		product, ok := products[line.ProductID]
		if !ok {
			b.WriteString("Unknown product\n")
			continue
		}
		total := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		fmt.Fprintf(&b, "%s: %d x %s = %s\n", product.Name, line.Quantity, product.Price.String(), total.String())
	}
	fmt.Fprintf(&b, "\nTotal: %s\n\n", in.TotalPrice.String())
	fmt.Fprintf(&b, "Thank you for shopping with %s!\n", s.shopName)

	return models.Receipt{
		To:      in.Email,
		Subject: ReceiptSubject,
		Body:    b.String(),
	}
}

func (s *OrderService) dispatch(ctx context.Context, receipt models.Receipt) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.notifier.Notify(ctx, receipt)
		metrics.ObserveReceiptDispatch(err)
		if err != nil {
			logrus.WithError(err).WithField("email", receipt.To).Warn("Failed to dispatch receipt")
		}
	}()
}

// Wait blocks until every in-flight receipt dispatch has finished.
func (s *OrderService) Wait() {
	s.wg.Wait()
}
