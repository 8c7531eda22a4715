package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hvr-studio/internal/client"
	"github.com/evcraddock/hvr-studio/internal/coupon"
)

func newCouponsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "coupons",
		Aliases: []string{"coupon"},
		Short:   "Manage discount codes",
	}

	var (
		req   client.NewCoupon
		limit int64
	)
	add := &cobra.Command{
		Use:   "add <code>",
		Short: "Create a coupon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Code = args[0]
			req.UsageLimit = nil
			if cmd.Flags().Changed("limit") {
				req.UsageLimit = &limit
			}
			return runCouponsAdd(req)
		},
	}
	add.Flags().StringVar(&req.Description, "description", "", "what the coupon is for")
	add.Flags().StringVar(&req.DiscountType, "type", "", "discount type (percent|fixed)")
	add.Flags().Float64Var(&req.DiscountValue, "value", 0, "discount amount or percentage")
	add.Flags().StringVar(&req.ValidFrom, "from", "", "first valid day (YYYY-MM-DD)")
	add.Flags().StringVar(&req.ValidUntil, "until", "", "last valid day (YYYY-MM-DD)")
	add.Flags().Int64Var(&limit, "limit", 0, "maximum number of redemptions (default unlimited)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List coupons, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCouponsList()
			},
		},
		&cobra.Command{
			Use:   "show <code>",
			Short: "Show a coupon",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCouponsShow(args[0])
			},
		},
		add,
		&cobra.Command{
			Use:   "check <code>",
			Short: "Check whether a code can be used today",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCouponsCheck(args[0])
			},
		},
		&cobra.Command{
			Use:   "redeem <code>",
			Short: "Count one use of a coupon",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCouponsRedeem(args[0])
			},
		},
		&cobra.Command{
			Use:   "remove <code>",
			Short: "Delete a coupon",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCouponsRemove(args[0])
			},
		},
	)

	return cmd
}

// formatDiscount renders a coupon's discount, e.g. "15%" or "$50.00".
func formatDiscount(c *coupon.Coupon) string {
	switch c.DiscountType {
	case coupon.DiscountPercent:
		return strconv.FormatFloat(c.DiscountValue, 'f', -1, 64) + "%"
	case coupon.DiscountFixed:
		return formatMoney(c.DiscountValue)
	}
	return "-"
}

// formatUsage renders used/limit, with ∞ for unlimited coupons.
func formatUsage(c *coupon.Coupon) string {
	if c.UsageLimit == nil {
		return fmt.Sprintf("%d/∞", c.UsedCount)
	}
	return fmt.Sprintf("%d/%d", c.UsedCount, *c.UsageLimit)
}

func runCouponsList() error {
	coupons, err := newAPIClient().ListCoupons()
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(coupons)
	}

	rows := make([][]string, 0, len(coupons))
	for _, c := range coupons {
		rows = append(rows, []string{
			c.Code,
			formatDiscount(c),
			orDash(c.ValidFrom),
			orDash(c.ValidUntil),
			formatUsage(c),
			truncate(c.Description, 30),
		})
	}
	return printTable("coupons", []string{"CODE", "DISCOUNT", "FROM", "UNTIL", "USED", "DESCRIPTION"}, rows)
}

func runCouponsShow(code string) error {
	c, err := newAPIClient().GetCoupon(code)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(c)
	}

	printFields("Coupon "+c.Code, [][2]string{
		{"Discount", formatDiscount(c)},
		{"From", orDash(c.ValidFrom)},
		{"Until", orDash(c.ValidUntil)},
		{"Used", formatUsage(c)},
		{"Details", c.Description},
		{"Created", formatTime(&c.CreatedAt)},
	})
	return nil
}

func runCouponsAdd(req client.NewCoupon) error {
	code, err := newAPIClient().CreateCoupon(req)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]string{"code": code})
	}
	fmt.Printf("Coupon %s created.\n", code)
	return nil
}

func runCouponsCheck(code string) error {
	v, err := newAPIClient().ValidateCoupon(code)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(v)
	}

	if !v.Valid {
		fmt.Printf("✗ %s: %s\n", coupon.NormalizeCode(code), v.Reason)
		return nil
	}
	fmt.Printf("✓ %s is valid: %s off (%s used)\n", v.Coupon.Code, formatDiscount(v.Coupon), formatUsage(v.Coupon))
	return nil
}

func runCouponsRedeem(code string) error {
	if err := newAPIClient().RedeemCoupon(code); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]any{"code": coupon.NormalizeCode(code), "redeemed": true})
	}
	fmt.Printf("Coupon %s redeemed.\n", coupon.NormalizeCode(code))
	return nil
}

func runCouponsRemove(code string) error {
	if err := newAPIClient().DeleteCoupon(code); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]any{"code": coupon.NormalizeCode(code), "removed": true})
	}
	fmt.Printf("Coupon %s removed.\n", coupon.NormalizeCode(code))
	return nil
}
