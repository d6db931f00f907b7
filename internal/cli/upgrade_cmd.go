package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/editflowhq/editflow/internal/billing"
	"github.com/editflowhq/editflow/internal/cli/formatter"
	"github.com/editflowhq/editflow/internal/domain"
	"github.com/spf13/cobra"
)

func newUpgradeCmd(app *App) *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade to the pro plan",
		Long: fmt.Sprintf("Start a pro-plan checkout. Pro raises the editor limit from %d to %d.",
			domain.TierFree.EditorLimit(), domain.TierPro.EditorLimit()),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Checkout == nil {
				return fmt.Errorf("billing is not configured; set EDITFLOW_CHECKOUT_URL")
			}

			if email == "" && app.interactive() {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Billing email").Value(&email),
					huh.NewInput().Title("Name (optional)").Value(&name),
				))
				if err := form.Run(); err != nil {
					return err
				}
			}

			session, err := app.Checkout.CreateCheckout(context.Background(), billing.CheckoutRequest{
				Plan:  domain.TierPro,
				Email: email,
				Name:  name,
			})
			switch {
			case errors.Is(err, billing.ErrBadGateway):
				return fmt.Errorf("the checkout endpoint looks misconfigured: %w", err)
			case errors.Is(err, billing.ErrServiceUnavailable):
				return fmt.Errorf("could not reach the billing service; try again later")
			case err != nil:
				return err
			}

			fmt.Println(formatter.Bold("Complete your upgrade here:"))
			fmt.Println(formatter.StyleBlue.Render(session.URL))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Billing email")
	cmd.Flags().StringVar(&name, "name", "", "Name on the invoice")

	return cmd
}
