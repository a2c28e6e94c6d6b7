package cart

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"shopdir/internal"
	"shopdir/internal/observability"
	"shopdir/internal/util"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrMissingOrderInfo = errors.New("name, phone and address are required")
)

// Checkout freezes the cart into a receipt. rng picks the voucher serial; a
// nil rng uses the global source.
func Checkout(c *Cart, info internal.OrderInfo, now time.Time, rng *rand.Rand) (internal.Receipt, error) {
	if c == nil || c.Len() == 0 {
		return internal.Receipt{}, ErrEmptyCart
	}
	info = internal.OrderInfo{
		Name:    strings.TrimSpace(info.Name),
		Phone:   strings.TrimSpace(info.Phone),
		Address: strings.TrimSpace(info.Address),
	}
	if info.Name == "" || info.Phone == "" || info.Address == "" {
		return internal.Receipt{}, ErrMissingOrderInfo
	}

	receipt := internal.Receipt{
		VoucherID: VoucherID(now, rng),
		IssuedAt:  now,
		Customer:  info,
	}
	for _, it := range c.Items() {
		unit := util.ParsePrice(it.Price)
		line := internal.ReceiptLine{
			BusinessID: it.BusinessID,
			Name:       it.Name,
			PriceText:  it.Price,
			UnitPrice:  unit,
			Quantity:   it.Quantity,
			Amount:     unit * int64(it.Quantity),
		}
		receipt.GrandTotal += line.Amount
		receipt.Lines = append(receipt.Lines, line)
	}

	observability.OrdersTotal.Inc()
	return receipt, nil
}

// VoucherID formats as YYYYMMDD followed by AM or PM and a two digit serial,
// e.g. 20260214PM-37.
func VoucherID(now time.Time, rng *rand.Rand) string {
	serial := 0
	if rng != nil {
		serial = rng.Intn(90)
	} else {
		serial = rand.Intn(90)
	}
	return fmt.Sprintf("%s%s-%d", now.Format("20060102"), now.Format("PM"), 10+serial)
}

// RenderText writes the printable voucher.
func RenderText(w io.Writer, r internal.Receipt, shopName, chatContact string) error {
	var b strings.Builder
	rule := strings.Repeat("-", 44)

	fmt.Fprintf(&b, "%s\n", shopName)
	fmt.Fprintf(&b, "Order Voucher\n%s\n", rule)
	fmt.Fprintf(&b, "Voucher No : %s\n", r.VoucherID)
	fmt.Fprintf(&b, "Date       : %s\n", r.IssuedAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "Time       : %s\n", r.IssuedAt.Format("03:04 PM"))
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Customer   : %s\n", r.Customer.Name)
	fmt.Fprintf(&b, "Phone      : %s\n", r.Customer.Phone)
	fmt.Fprintf(&b, "Address    : %s\n", r.Customer.Address)
	fmt.Fprintf(&b, "%s\n", rule)

	for i, line := range r.Lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line.Name)
		price := line.PriceText
		if price == "" {
			price = "-"
		}
		fmt.Fprintf(&b, "   %s x %d = %s\n", price, line.Quantity, util.FormatPrice(line.Amount))
	}

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Grand Total: %s\n", util.FormatPrice(r.GrandTotal))
	fmt.Fprintf(&b, "%s\n", rule)
	if chatContact != "" {
		fmt.Fprintf(&b, "Send this voucher to %s to confirm your order.\n", chatContact)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
