// Command store-cli runs the storefront as an interactive console session:
// sign up or log in, then browse the catalog, fill a cart, and check out.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/storefront/internal/app"
	"github.com/xenking/storefront/internal/auth"
	"github.com/xenking/storefront/internal/cart"
	"github.com/xenking/storefront/internal/catalog"
	"github.com/xenking/storefront/internal/promo"
	"github.com/xenking/storefront/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cat, err := app.SeedCatalog()
	if err != nil {
		return err
	}
	rules, err := app.SeedPromoRules()
	if err != nil {
		return err
	}

	ui := &console{
		in:      bufio.NewScanner(os.Stdin),
		users:   auth.NewRegistry([]byte(os.Getenv("STORE_AUTH_PEPPER"))),
		catalog: cat,
	}
	ui.session = store.NewSession(cat, promo.NewRuleValidator(rules, nil))

	if !ui.authenticate(ctx) {
		return nil
	}
	ui.shop(ctx)
	return nil
}

type console struct {
	in      *bufio.Scanner
	users   *auth.Registry
	catalog *catalog.Catalog
	session *store.Session
}

// authenticate loops over signup/login until a login succeeds or input ends.
func (c *console) authenticate(ctx context.Context) bool {
	for ctx.Err() == nil {
		choice := c.prompt("\n1. Signup\n2. Login\nChoose: ")
		username := c.prompt("Username: ")
		password := c.prompt("Password: ")

		switch choice {
		case "1":
			if err := c.users.SignUp(username, password); err != nil {
				fmt.Println(friendly(err))
				continue
			}
			fmt.Println("Signup successful!")
		case "2":
			if _, err := c.users.Login(username, password); err != nil {
				fmt.Println(friendly(err))
				continue
			}
			fmt.Println("Login successful!")
			return true
		default:
			fmt.Println("Unknown choice.")
		}
	}
	return false
}

// shop runs the main menu loop until exit or interrupt.
func (c *console) shop(ctx context.Context) {
	for ctx.Err() == nil {
		c.printCatalog()

		switch c.prompt("\n1. Add to Cart\n2. View Cart\n3. Remove from Cart\n4. Checkout\n5. Exit\nChoice: ") {
		case "1":
			c.addToCart()
		case "2":
			c.viewCart()
		case "3":
			c.removeFromCart()
		case "4":
			c.checkout(ctx)
		case "5":
			return
		default:
			fmt.Println("Unknown choice.")
		}
	}
}

func (c *console) printCatalog() {
	fmt.Println("\nAvailable Shirts:")
	for i, it := range c.catalog.List() {
		fmt.Printf("%d. %s - $%s (Available: %d)\n", i+1, it.Name, it.Price.StringFixed(2), it.Stock)
	}
}

func (c *console) addToCart() {
	items := c.catalog.List()

	idx, err := strconv.Atoi(c.prompt("Enter product number: "))
	if err != nil || idx < 1 || idx > len(items) {
		fmt.Println("Invalid product number.")
		return
	}
	qty, err := strconv.Atoi(c.prompt("Enter quantity: "))
	if err != nil {
		fmt.Println("Invalid quantity.")
		return
	}

	if err := c.session.Add(items[idx-1].ID, qty); err != nil {
		fmt.Println(friendly(err))
		return
	}
	fmt.Println("Added to cart.")
}

func (c *console) viewCart() {
	lines := c.session.Lines()
	if len(lines) == 0 {
		fmt.Println("Cart is empty.")
		return
	}
	for i, line := range lines {
		fmt.Printf("%d. %s x%d - $%s", i+1, line.Name, line.Quantity,
			c.session.Subtotal(line).StringFixed(2))
		if line.Discounted() {
			fmt.Print(" (20% discount applied)")
		}
		fmt.Println()
	}
	fmt.Printf("Total: $%s\n", c.session.Total().StringFixed(2))
}

func (c *console) removeFromCart() {
	idx, err := strconv.Atoi(c.prompt("Enter cart line number: "))
	if err != nil {
		fmt.Println("Invalid line number.")
		return
	}

	line, err := c.session.Remove(idx - 1)
	if err != nil {
		fmt.Println(friendly(err))
		return
	}
	fmt.Printf("Removed %s x%d; stock returned.\n", line.Name, line.Quantity)
}

func (c *console) checkout(ctx context.Context) {
	code := c.prompt("Promo code (enter to skip): ")

	receipt, err := c.session.Checkout(ctx, code)
	if err != nil {
		fmt.Println(friendly(err))
		return
	}

	fmt.Println("\n--- Receipt ---")
	for _, line := range receipt.Lines {
		fmt.Printf("%s x%d - $%s", line.Name, line.Quantity, line.Subtotal.StringFixed(2))
		if line.Discounted {
			fmt.Print(" (20% discount applied)")
		}
		fmt.Println()
	}
	if receipt.Discount.IsPositive() {
		fmt.Printf("Promo %s: -$%s\n", receipt.PromoCode, receipt.Discount.StringFixed(2))
	}
	fmt.Printf("Total: $%s\n", receipt.Total.StringFixed(2))
	fmt.Printf("Order %s\n", receipt.ID)
}

func (c *console) prompt(msg string) string {
	fmt.Print(msg)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// friendly renders the engine's error kinds for the terminal.
func friendly(err error) string {
	var (
		stockErr *catalog.InsufficientStockError
		idxErr   *cart.IndexOutOfRangeError
	)

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return "No such product."
	case errors.Is(err, catalog.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidQuantity):
		return "Quantity must be greater than 0."
	case errors.As(err, &stockErr):
		return fmt.Sprintf("Only %d left in stock.", stockErr.Available)
	case errors.As(err, &idxErr):
		return "No cart line with that number."
	case errors.Is(err, store.ErrEmptyCart):
		return "Cart is empty."
	case errors.Is(err, promo.ErrInvalidCode):
		return "Invalid promo code."
	case errors.Is(err, auth.ErrUserExists):
		return "Username already exists."
	case errors.Is(err, auth.ErrEmptyCredentials):
		return "Username and password cannot be empty."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials."
	default:
		return err.Error()
	}
}
