package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"fellowship/internal/platform/account"
)

var (
	apiBaseURL string
	authToken  string
)

type ResponseError struct {
	Message string `json:"message"`
}

var apiServiceBase = func() *resty.Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetHeader("Accept", "application/json").
		SetError(&ResponseError{}).
		OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				return fmt.Errorf("%s", resp.Error().(*ResponseError).Message)
			}

			return nil
		})

	if authToken != "" {
		client.SetAuthToken(authToken)
	}

	return client
}

var rootCmd = &cobra.Command{
	Use:   "fellowship",
	Short: "Fellowship backend CLI",
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrators",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in as an administrator",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetBody(map[string]string{
				"email":    args[0],
				"password": args[1],
			}).
			SetResult(&account.AdminAuthResponse{}).
			Post("/api/admin/login")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		admin := resp.Result().(*account.AdminAuthResponse)

		fmt.Println("Admin ID :", admin.ID)
		fmt.Println("Email    :", admin.Email)
		fmt.Println("Role     :", admin.Role)
		fmt.Println("Token    :", admin.Token)
	},
}

var adminCreateRole string

var adminCreateCmd = &cobra.Command{
	Use:   "create <email> <first_name> <last_name> <password>",
	Short: "Create a new administrator (super admin token required)",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetBody(map[string]string{
				"email":      args[0],
				"first_name": args[1],
				"last_name":  args[2],
				"password":   args[3],
				"role":       adminCreateRole,
			}).
			SetResult(&map[string]any{}).
			Post("/api/admin/register-admin")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		result := *resp.Result().(*map[string]any)

		fmt.Println("Admin ID :", result["id"])
		fmt.Println("Email    :", result["email"])
		fmt.Println("Role     :", result["role"])
	},
}

var adminListCmd = &cobra.Command{
	Use:   "list",
	Short: "List administrators",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetResult(&account.AdminPage{}).
			Get("/api/admin/")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		page := resp.Result().(*account.AdminPage)

		fmt.Printf("Admins (%d total)\n", page.Total)
		for _, admin := range page.Items {
			fmt.Printf("  - %s  %s %s  [%s]  active=%v\n",
				admin.ID, admin.FirstName, admin.LastName, admin.Role, admin.IsActive)
		}
	},
}

func main() {
	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminCreateCmd)
	adminCmd.AddCommand(adminListCmd)
	rootCmd.AddCommand(adminCmd)

	rootCmd.PersistentFlags().StringVarP(&apiBaseURL, "url", "u", "http://localhost:3000", "API base URL")
	rootCmd.PersistentFlags().StringVarP(&authToken, "token", "t", "", "Bearer token")
	adminCreateCmd.Flags().StringVarP(&adminCreateRole, "role", "r", "Admin", "Admin role to assign")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
