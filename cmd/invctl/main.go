package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"inventory/console"
	"inventory/listkit"
	"inventory/models"
)

var serverURL string

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".invctl_token"
	}
	return filepath.Join(home, ".invctl_token")
}

func newClient() *console.Client {
	client := console.NewClient(serverURL)
	if data, err := os.ReadFile(tokenPath()); err == nil {
		client.SetToken(strings.TrimSpace(string(data)))
	}
	return client
}

func saveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0o600)
}

func cmdCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// readPassword reads a password with terminal echo disabled.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return "", sc.Err()
	}
	return strings.TrimSpace(sc.Text()), nil
}

func confirm(prompt string) bool {
	answer, err := readLine(prompt + " [y/N]: ")
	return err == nil && strings.EqualFold(answer, "y")
}

func fail(err error) error {
	if errors.Is(err, console.ErrSessionExpired) {
		return errors.New("session expired, run 'invctl login'")
	}
	return err
}

// renderPager formats the pager cells, an ellipsis marking a collapsed run
// of pages.
func renderPager(cells []int, current int) string {
	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		switch {
		case cell == listkit.Gap:
			parts = append(parts, "…")
		case cell == current:
			parts = append(parts, fmt.Sprintf("[%d]", cell))
		default:
			parts = append(parts, strconv.Itoa(cell))
		}
	}
	return strings.Join(parts, " ")
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := readLine("Email: ")
			if err != nil {
				return err
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			ctx, cancel := cmdCtx()
			defer cancel()

			client := console.NewClient(serverURL)
			if err := client.Login(ctx, email, password); err != nil {
				return fail(err)
			}
			if err := saveToken(client.Token()); err != nil {
				return err
			}
			fmt.Println("Logged in.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdCtx()
			defer cancel()

			user, err := newClient().Me(ctx)
			if err != nil {
				return fail(err)
			}
			fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}

func productsCmd() *cobra.Command {
	var search string
	var page int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdCtx()
			defer cancel()

			client := newClient()
			view := console.NewListView(func(ctx context.Context, query string) ([]models.Product, error) {
				return client.Products(ctx, query)
			}, 10,
				listkit.Field(func(p models.Product) string { return p.Name }),
				listkit.Field(func(p models.Product) string { return p.SKU }),
				listkit.Field(func(p models.Product) string { return p.Category }),
			)
			view.SetQuery(search)
			if err := view.Refresh(ctx); err != nil {
				return fail(err)
			}
			view.SetPage(page)

			for _, p := range view.Visible() {
				marker := " "
				if p.LowStock() {
					marker = "!"
				}
				fmt.Printf("%s %-24s %-12s qty %6.0f  min %4.0f  %10.2f\n",
					marker, p.Name, p.SKU, p.Quantity, p.MinQuantity, p.Price)
			}
			if view.PageCount() > 1 {
				fmt.Println(renderPager(view.PageNumbers(), view.Page()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by name, SKU or category")
	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	return cmd
}

func lowStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "List products at or below their minimum quantity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdCtx()
			defer cancel()

			products, err := newClient().LowStockProducts(ctx)
			if err != nil {
				return fail(err)
			}
			if len(products) == 0 {
				fmt.Println("No products below minimum.")
				return nil
			}
			for _, p := range products {
				fmt.Printf("%-24s qty %6.0f  min %4.0f\n", p.Name, p.Quantity, p.MinQuantity)
			}
			return nil
		},
	}
}

func salesCmd() *cobra.Command {
	var recent bool

	cmd := &cobra.Command{
		Use:   "sales",
		Short: "List sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdCtx()
			defer cancel()

			client := newClient()
			var (
				sales []models.Sale
				err   error
			)
			if recent {
				sales, err = client.RecentSales(ctx)
			} else {
				sales, err = client.Sales(ctx)
			}
			if err != nil {
				return fail(err)
			}
			for _, s := range sales {
				remaining, _ := listkit.Remaining(s.Total, s.PaidAmount)
				fmt.Printf("%s  %-20s total %10.2f  paid %10.2f  due %10.2f  %s\n",
					s.ID.Hex(), s.Customer, s.Total, s.PaidAmount, remaining,
					listkit.StatusOf(s.PaidAmount, s.Total))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&recent, "recent", false, "only the five most recent sales")

	cmd.AddCommand(&cobra.Command{
		Use:   "pay <sale-id> <amount>",
		Short: "Record a payment against a credit sale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			ctx, cancel := cmdCtx()
			defer cancel()

			sale, err := newClient().PaySale(ctx, args[0], models.SalePaymentInput{Amount: amount})
			if err != nil {
				return fail(err)
			}
			remaining, _ := listkit.Remaining(sale.Total, sale.PaidAmount)
			fmt.Printf("Paid %.2f, remaining %.2f (%s)\n", amount, remaining,
				listkit.StatusOf(sale.PaidAmount, sale.Total))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cancel <sale-id>",
		Short: "Cancel a sale and restock its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm("Cancel sale " + args[0] + "?") {
				fmt.Println("Aborted.")
				return nil
			}
			pass, err := readPassword("Your password: ")
			if err != nil {
				return err
			}

			ctx, cancel := cmdCtx()
			defer cancel()

			if err := newClient().CancelSale(ctx, models.CancelSaleInput{SaleID: args[0], Pass: pass}); err != nil {
				return fail(err)
			}
			fmt.Println("Sale cancelled.")
			return nil
		},
	})

	return cmd
}

func customersCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdCtx()
			defer cancel()

			customers, err := newClient().Customers(ctx, search)
			if err != nil {
				return fail(err)
			}
			for _, c := range customers {
				fmt.Printf("%s  %-24s %-16s limit %10.2f\n", c.ID.Hex(), c.Name, c.Phone, c.CreditLimit)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by name or phone")

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <customer-id>",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm("Delete customer " + args[0] + "?") {
				fmt.Println("Aborted.")
				return nil
			}
			pass, err := readPassword("Your password: ")
			if err != nil {
				return err
			}

			ctx, cancel := cmdCtx()
			defer cancel()

			if err := newClient().DeleteCustomer(ctx, models.DeleteInput{ID: args[0], Pass: pass}); err != nil {
				return fail(err)
			}
			fmt.Println("Customer deleted.")
			return nil
		},
	})

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdCtx()
			defer cancel()

			stats, err := newClient().Stats(ctx)
			if err != nil {
				return fail(err)
			}
			fmt.Printf("Products:   %d\n", stats.TotalProducts)
			fmt.Printf("Sales:      %d\n", stats.TotalSales)
			fmt.Printf("Revenue:    %.2f\n", stats.TotalRevenue)
			fmt.Printf("Low stock:  %d\n", stats.LowStockItems)
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <year> <month>",
		Short: "Show the monthly report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[1])
			}

			ctx, cancel := cmdCtx()
			defer cancel()

			report, err := newClient().MonthlyStatistic(ctx, year, month)
			if err != nil {
				return fail(err)
			}
			fmt.Printf("Report for %d-%02d\n", year, month)
			if profit, ok := report["profit"].(float64); ok {
				fmt.Printf("Profit: %.2f\n", profit)
			}
			if sum, ok := report["sum"].(map[string]any); ok {
				for _, section := range []string{"sale", "products", "salary", "borrow", "expend"} {
					fmt.Printf("%-10s %v\n", section, sum[section])
				}
			}
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "invctl",
		Short:         "Terminal console for the inventory service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	defaultServer := os.Getenv("INVCTL_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:5000"
	}
	root.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "base URL of the inventory API")

	root.AddCommand(
		loginCmd(),
		whoamiCmd(),
		productsCmd(),
		lowStockCmd(),
		salesCmd(),
		customersCmd(),
		statsCmd(),
		reportCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
