package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Ledger CLI tool",
		Long:  `A command line interface for interacting with the ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	createCmd := &cobra.Command{
		Use:   "create-account <account-id>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			createAccount(args[0])
		},
	}

	depositCmd := &cobra.Command{
		Use:   "deposit <account-id> <amount-cents>",
		Short: "Deposit funds into an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			deposit(args[0], parseAmount(args[1]))
		},
	}

	transferCmd := &cobra.Command{
		Use:   "transfer <origin-id> <destination-id> <amount-cents>",
		Short: "Transfer funds between accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			transfer(args[0], args[1], parseAmount(args[2]))
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			balance(args[0])
		},
	}

	rootCmd.AddCommand(createCmd, depositCmd, transferCmd, balanceCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func parseAmount(raw string) int64 {
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Printf("Invalid amount %q: must be an integer number of cents\n", raw)
		os.Exit(1)
	}
	return amount
}

func postJSON(path string, payload any) map[string]any {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func decodeResponse(resp *http.Response) map[string]any {
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}

func createAccount(accountID string) {
	result := postJSON("/api/v1/accounts/", map[string]any{"account_id": accountID})
	fmt.Printf("Account created: %s\n", result["account_id"])
}

func deposit(accountID string, amount int64) {
	postJSON(fmt.Sprintf("/api/v1/accounts/%s/deposits", accountID), map[string]any{"amount": amount})
	fmt.Printf("Deposited %d into %s\n", amount, accountID)
}

func transfer(originID, destinationID string, amount int64) {
	postJSON("/api/v1/transfers", map[string]any{
		"origin_id":      originID,
		"destination_id": destinationID,
		"amount":         amount,
	})
	fmt.Printf("Transferred %d from %s to %s\n", amount, originID, destinationID)
}

func balance(accountID string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(fmt.Sprintf("%s/api/v1/accounts/%s/balance", baseURL, accountID))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	result := decodeResponse(resp)
	fmt.Printf("Account:   %s\n", result["account_id"])
	fmt.Printf("Balance:   %s\n", result["formatted"])
	fmt.Printf("Deposits:  %v\n", result["deposits"])
	fmt.Printf("Transfers: %v\n", result["transfers"])
}
