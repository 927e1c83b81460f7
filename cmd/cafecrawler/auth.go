package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cafecrawler/pkg/auth"
	"cafecrawler/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Naver login cookies",
	Long: `Manage the login cookies the crawler uses to read member-only cafe pages.

Cookies are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables CAFECRAWLER_NID_AUT and CAFECRAWLER_NID_SES (read-only)

Never share your cookies or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Store login cookies securely",
	Long: `Store the NID_AUT and NID_SES cookies in the system keychain or an encrypted file.

You will be prompted for:
  - Account name (if not provided)
  - NID_AUT cookie value
  - NID_SES cookie value
  - User Agent (optional, press Enter for default)`,
	Example: `  # Interactive login
  cafecrawler auth login

  # Login with account name
  cafecrawler auth login work`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout [name]",
	Short: "Remove stored cookies",
	Long: `Remove a stored account.

If no name is provided, you will be shown a list of stored accounts
to choose from.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogout,
}

// listCmd represents the auth list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored accounts",
	Long:  `List all stored accounts with the cookie values masked.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(listCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	out := ui.Output
	reader := bufio.NewReader(os.Stdin)

	auth.WriteCookieGuide(out)
	fmt.Fprint(out, "\nReady to enter your cookies? (Y/n): ")
	if strings.EqualFold(readLine(reader), "n") {
		fmt.Fprintln(out, "\nRun 'cafecrawler auth login' when you're ready.")
		return nil
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		fmt.Fprint(out, "\nAccount name: ")
		name = readLine(reader)
	}
	if name == "" {
		return errors.New("account name is required")
	}

	if existing, _ := manager.Retrieve(name); existing != nil {
		fmt.Fprintf(out, "\nAccount '%s' already exists. Update cookies? (y/N): ", name)
		if !strings.HasPrefix(strings.ToLower(readLine(reader)), "y") {
			return nil
		}
	}

	fmt.Fprintln(out, "\nEnter the cookie values (they are hidden as you type).")
	auth.WriteQuickGuide(out)

	nidAut, err := promptCookie(reader, auth.CookieNIDAut)
	if err != nil {
		return err
	}
	nidSes, err := promptCookie(reader, auth.CookieNIDSes)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "\nUser Agent (press Enter to use default): ")
	userAgent := readLine(reader)

	account := &auth.Account{
		Name:         name,
		NIDAut:       nidAut,
		NIDSes:       nidSes,
		UserAgent:    userAgent,
		LastModified: time.Now(),
	}
	if err := account.Validate(); err != nil {
		return err
	}

	masked := auth.SanitizeAccount(account)
	fmt.Fprintln(out, "\nSummary:")
	fmt.Fprintf(out, "   Account: %s\n", masked.Name)
	fmt.Fprintf(out, "   %s: %s\n", auth.CookieNIDAut, masked.NIDAut)
	fmt.Fprintf(out, "   %s: %s\n", auth.CookieNIDSes, masked.NIDSes)

	if err := manager.Store(account); err != nil {
		return fmt.Errorf("failed to store cookies: %w", err)
	}
	ui.PrintSuccess("Account saved: " + name)

	fmt.Fprintln(out, "\nArchive an author's posts with:")
	fmt.Fprintf(out, "   $ cafecrawler crawl --club <club id> --author <member id> --account %s\n", name)
	return nil
}

// promptCookie asks for one cookie value until it is non-empty or the user gives up
func promptCookie(reader *bufio.Reader, cookie string) (string, error) {
	for {
		fmt.Fprintf(ui.Output, "\n%s cookie value: ", cookie)
		value, err := readPassword(reader)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", cookie, err)
		}
		value = strings.Trim(strings.TrimSpace(value), `";`)
		if value != "" && !strings.ContainsAny(value, " \t") {
			return value, nil
		}

		fmt.Fprintf(ui.Output, "\nThat doesn't look like a %s value. Copy only the value column.\n", cookie)
		fmt.Fprint(ui.Output, "Try again? (Y/n): ")
		if strings.EqualFold(readLine(reader), "n") {
			return "", fmt.Errorf("%s cookie is required", cookie)
		}
	}
}

func runLogout(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		accounts, err := manager.List()
		if err != nil || len(accounts) == 0 {
			ui.PrintWarning("No stored accounts found")
			return nil
		}

		fmt.Fprintln(ui.Output, "Select account to remove:")
		for i, account := range accounts {
			fmt.Fprintf(ui.Output, "  %d. %s\n", i+1, account.Name)
		}
		fmt.Fprint(ui.Output, "  0. Cancel\n\nChoice: ")

		var choice int
		fmt.Sscanf(readLine(bufio.NewReader(os.Stdin)), "%d", &choice)
		if choice == 0 {
			return nil
		}
		if choice < 0 || choice > len(accounts) {
			return errors.New("invalid choice")
		}
		name = accounts[choice-1].Name
	}

	if err := manager.Delete(name); err != nil {
		return fmt.Errorf("failed to remove account: %w", err)
	}
	ui.PrintSuccess("Account removed: " + name)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	accounts, err := manager.List()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	if len(accounts) == 0 {
		ui.PrintInfo("No stored accounts", "Use 'cafecrawler auth login' to add an account")
		return nil
	}

	ui.PrintHighlight("Stored Accounts")
	fmt.Fprintln(ui.Output)

	for i, account := range accounts {
		sanitized := auth.SanitizeAccount(account)
		fmt.Fprintf(ui.Output, "%d. Account: %s\n", i+1, sanitized.Name)
		fmt.Fprintf(ui.Output, "   %s: %s\n", auth.CookieNIDAut, sanitized.NIDAut)
		fmt.Fprintf(ui.Output, "   %s: %s\n", auth.CookieNIDSes, sanitized.NIDSes)
		if sanitized.UserAgent != "" {
			fmt.Fprintf(ui.Output, "   User Agent: %s\n", sanitized.UserAgent)
		}
		if !sanitized.LastModified.IsZero() {
			fmt.Fprintf(ui.Output, "   Last Modified: %s\n", sanitized.LastModified.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(ui.Output)
	}
	return nil
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// readPassword reads a secret from stdin without echoing when stdin is a terminal
func readPassword(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(ui.Output)
		if err == nil {
			return string(secret), nil
		}
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
