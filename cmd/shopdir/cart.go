package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shopdir/internal"
	"shopdir/internal/cart"
	"shopdir/internal/directory"
	"shopdir/internal/storage"
	"shopdir/internal/util"
)

var (
	cartSession  string
	cartBusiness string
	cartDelta    int
	orderItems   []string
	orderName    string
	orderPhone   string
	orderAddress string
	orderXLSX    string
	orderEML     string
	orderVoucher string
)

var cartAddCmd = &cobra.Command{
	Use:   "cart:add",
	Short: "Add one unit of a business to the session cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd, true, func(ctx context.Context, c *cart.Cart, byID map[string]internal.Business) error {
			b, ok := byID[cartBusiness]
			if !ok {
				return fmt.Errorf("unknown business id: %s", cartBusiness)
			}
			c.Add(b)
			return nil
		})
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "cart:update",
	Short: "Change a cart line quantity by --delta; a line at zero is removed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd, false, func(ctx context.Context, c *cart.Cart, _ map[string]internal.Business) error {
			c.UpdateQuantity(cartBusiness, cartDelta)
			return nil
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "cart:remove",
	Short: "Remove a business from the session cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd, false, func(ctx context.Context, c *cart.Cart, _ map[string]internal.Business) error {
			c.Remove(cartBusiness)
			return nil
		})
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "cart:show",
	Short: "Print the session cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd, false, nil)
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "cart:clear",
	Short: "Empty the session cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd, false, func(ctx context.Context, c *cart.Cart, _ map[string]internal.Business) error {
			c.Clear()
			return nil
		})
	},
}

var orderCheckoutCmd = &cobra.Command{
	Use:   "order:checkout",
	Short: "Issue a voucher for the session cart or for --item ID[:QTY] lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		var store *cart.Store
		var c *cart.Cart
		if len(orderItems) > 0 {
			businesses, err := currentDirectory(ctx, db)
			if err != nil {
				return err
			}
			c, err = cartFromItems(orderItems, directory.ByID(businesses))
			if err != nil {
				return err
			}
		} else {
			if err := requireFlag("session", cartSession); err != nil {
				return err
			}
			store, err = openCartStore()
			if err != nil {
				return err
			}
			defer store.Close()
			c, err = store.Load(ctx, cartSession)
			if err != nil {
				return err
			}
		}

		info := internal.OrderInfo{Name: orderName, Phone: orderPhone, Address: orderAddress}
		receipt, err := cart.Checkout(c, info, time.Now(), nil)
		if err != nil {
			return err
		}
		if err := recordOrder(db, &receipt, nil); err != nil {
			return err
		}

		var text bytes.Buffer
		if err := cart.RenderText(&text, receipt, state.cfg.ShopName, state.cfg.OrderChatContact); err != nil {
			return err
		}
		if _, err := io.Copy(cmd.OutOrStdout(), bytes.NewReader(text.Bytes())); err != nil {
			return err
		}

		if orderXLSX != "" {
			if err := cart.ExportReceiptXLSX(receipt, orderXLSX); err != nil {
				return err
			}
		}
		if orderEML != "" {
			if err := writeReceiptMessage(receipt, text.String(), orderEML); err != nil {
				return err
			}
		}

		if store != nil {
			return store.Delete(ctx, cartSession)
		}
		return nil
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "order:show",
	Short: "Print a stored voucher",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("voucher", orderVoucher); err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		receipt, err := db.GetOrder(orderVoucher)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("voucher not found: %s", orderVoucher)
		}
		return cart.RenderText(cmd.OutOrStdout(), *receipt, state.cfg.ShopName, state.cfg.OrderChatContact)
	},
}

func init() {
	for _, c := range []*cobra.Command{cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartShowCmd, cartClearCmd} {
		c.Flags().StringVar(&cartSession, "session", "", "cart session id")
	}
	for _, c := range []*cobra.Command{cartAddCmd, cartUpdateCmd, cartRemoveCmd} {
		c.Flags().StringVar(&cartBusiness, "id", "", "business id")
	}
	cartUpdateCmd.Flags().IntVar(&cartDelta, "delta", 1, "quantity change, may be negative")

	orderCheckoutCmd.Flags().StringVar(&cartSession, "session", "", "cart session id")
	orderCheckoutCmd.Flags().StringArrayVar(&orderItems, "item", nil, "business id with optional quantity, e.g. 8:2")
	orderCheckoutCmd.Flags().StringVar(&orderName, "name", "", "customer name")
	orderCheckoutCmd.Flags().StringVar(&orderPhone, "phone", "", "customer phone")
	orderCheckoutCmd.Flags().StringVar(&orderAddress, "address", "", "delivery address")
	orderCheckoutCmd.Flags().StringVar(&orderXLSX, "xlsx", "", "also write the voucher as xlsx")
	orderCheckoutCmd.Flags().StringVar(&orderEML, "eml", "", "also write the voucher as a MIME message")

	orderShowCmd.Flags().StringVar(&orderVoucher, "voucher", "", "voucher number")
}

const voucherAttempts = 10

type orderRecorder interface {
	InsertOrder(r internal.Receipt) error
}

// recordOrder stores the receipt, drawing a new voucher serial when the
// number is already taken for the half-day.
func recordOrder(db orderRecorder, receipt *internal.Receipt, rng *rand.Rand) error {
	var err error
	for attempt := 0; attempt < voucherAttempts; attempt++ {
		if attempt > 0 {
			receipt.VoucherID = cart.VoucherID(receipt.IssuedAt, rng)
		}
		err = db.InsertOrder(*receipt)
		if !errors.Is(err, storage.ErrVoucherExists) {
			return err
		}
	}
	return err
}

func openCartStore() (*cart.Store, error) {
	if err := state.cfg.Require("REDIS_URL", state.cfg.RedisURL); err != nil {
		return nil, err
	}
	return cart.NewStore(state.cfg.RedisURL, time.Duration(state.cfg.CartTTLMin)*time.Minute)
}

// withCart loads the session cart, applies mutate, saves it and prints it.
// A nil mutate only prints. needDirectory passes the business index to mutate.
func withCart(cmd *cobra.Command, needDirectory bool, mutate func(context.Context, *cart.Cart, map[string]internal.Business) error) error {
	if err := requireFlag("session", cartSession); err != nil {
		return err
	}
	ctx := cmd.Context()

	store, err := openCartStore()
	if err != nil {
		return err
	}
	defer store.Close()

	c, err := store.Load(ctx, cartSession)
	if err != nil {
		return err
	}

	if mutate != nil {
		var byID map[string]internal.Business
		if needDirectory {
			byID, err = directoryIndex(ctx)
			if err != nil {
				return err
			}
		}
		if err := mutate(ctx, c, byID); err != nil {
			return err
		}
		if err := store.Save(ctx, cartSession, c); err != nil {
			return err
		}
	}

	printCart(cmd.OutOrStdout(), c)
	return nil
}

func directoryIndex(ctx context.Context) (map[string]internal.Business, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()
	businesses, err := currentDirectory(ctx, db)
	if err != nil {
		return nil, err
	}
	return directory.ByID(businesses), nil
}

func cartFromItems(items []string, byID map[string]internal.Business) (*cart.Cart, error) {
	c := &cart.Cart{}
	for _, item := range items {
		id, qtyText, hasQty := strings.Cut(strings.TrimSpace(item), ":")
		qty := 1
		if hasQty {
			n, err := strconv.Atoi(strings.TrimSpace(qtyText))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid quantity in --item %q", item)
			}
			qty = n
		}
		b, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown business id: %s", id)
		}
		c.Add(b)
		c.UpdateQuantity(id, qty-1)
	}
	return c, nil
}

func printCart(out io.Writer, c *cart.Cart) {
	if c.Len() == 0 {
		fmt.Fprintln(out, "cart is empty")
		return
	}
	for i, it := range c.Items() {
		fmt.Fprintf(out, "%d. %s x %d  %s\n", i+1, it.Name, it.Quantity, it.Price)
	}
	fmt.Fprintf(out, "items: %d  total: %s\n", c.Count(), util.FormatPrice(c.Total()))
}

func writeReceiptMessage(receipt internal.Receipt, text, path string) error {
	if err := state.cfg.Require("ORDER_EMAIL_FROM", state.cfg.OrderEmailFrom); err != nil {
		return err
	}
	if err := state.cfg.Require("ORDER_EMAIL_TO", state.cfg.OrderEmailTo); err != nil {
		return err
	}
	msg, err := cart.BuildReceiptMessage(receipt, text, state.cfg.OrderEmailFrom, state.cfg.OrderEmailTo)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, msg, 0o644)
}
