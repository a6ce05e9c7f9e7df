package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"labstock/config"
	"labstock/export"
	"labstock/internal/logger"
	"labstock/inventory"
	"labstock/storage"
)

var assumeYes bool

var rootCmd = &cobra.Command{
	Use:   "labstock",
	Short: "Stock-room inventory tracking",
	Long: `Lab Stock tracks a stock room against a Google Sheets spreadsheet
with an offline SQLite mirror. Run without a subcommand to open the
desktop interface.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGUI()
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List and manage inventory items",
}

var itemsListCmd = &cobra.Command{
	Use:   "list [search term]",
	Short: "Print the inventory, optionally filtered",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()

		items := env.store.Items()
		if len(args) == 1 {
			items = inventory.Filter(items, args[0])
		}
		fmt.Print(itemReport(items))
		return nil
	},
}

var itemsSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Print the items matching a search term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return itemsListCmd.RunE(cmd, args)
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <part> <manufacturer> <description> <b750> <b757> <b750-min> <b757-min>",
	Short: "Add an inventory item",
	Args:  cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		item := inventory.Item{
			PartNum:      args[0],
			Manufacturer: args[1],
			Description:  args[2],
		}

		counts := []*int{&item.StockB750, &item.StockB757, &item.Minimum, &item.MinimumSallie}
		for i, dst := range counts {
			n, err := strconv.Atoi(args[3+i])
			if err != nil || n < 0 {
				return fmt.Errorf("argument %q must be a non-negative whole number", args[3+i])
			}
			*dst = n
		}
		item.Recompute()

		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()

		if _, exists := env.store.Find(item.PartNum); exists {
			return fmt.Errorf("part %s already exists", item.PartNum)
		}
		if err := env.store.Update(cmd.Context(), inventory.UpdateAdd, item); err != nil {
			return err
		}
		fmt.Printf("Added %s (%s)\n", item.PartNum, item.Status)
		return nil
	},
}

var itemsRemoveCmd = &cobra.Command{
	Use:   "remove <part>",
	Short: "Remove an inventory item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()

		item, ok := env.store.Find(args[0])
		if !ok {
			return fmt.Errorf("part %s not found", args[0])
		}
		if !confirm(fmt.Sprintf("Remove %s (%s)?", item.PartNum, item.Description)) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := env.store.Update(cmd.Context(), inventory.UpdateRemove, item); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", item.PartNum)
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List and manage checkout users",
}

var usersListCmd = &cobra.Command{
	Use:   "list [search term]",
	Short: "Print the known users",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()

		for _, user := range sortedUsers(env.store.Users()) {
			if len(args) == 1 && !strings.Contains(strings.ToLower(user), strings.ToLower(args[0])) {
				continue
			}
			fmt.Println(user)
		}
		return nil
	},
}

var usersSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Print the users matching a search term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return usersListCmd.RunE(cmd, args)
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a checkout user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()

		if err := env.store.AddUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Added user %s\n", args[0])
		return nil
	},
}

var usersRemoveCmd = &cobra.Command{
	Use:   "remove <username>",
	Short: "Remove a checkout user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()

		if !confirm(fmt.Sprintf("Remove user %s?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := env.store.RemoveUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed user %s\n", args[0])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <csv|tsv|psv|pdf> [dir]",
	Short: "Write the inventory to a file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()

		dir := env.cfg.ExportDir
		if len(args) == 2 {
			dir = args[1]
		}

		var path string
		if args[0] == "pdf" {
			path, err = export.WritePDF(dir, env.store.Items())
		} else {
			path, err = export.WriteSV(args[0], dir, env.store.Items())
		}
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var qrCmd = &cobra.Command{
	Use:   "qr <part-or-user> [dir]",
	Short: "Write a QR code label for a part or user",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()

		if _, ok := env.store.Find(args[0]); !ok && !env.store.HasUser(args[0]) {
			return fmt.Errorf("%s is not a known part or user", args[0])
		}

		dir := env.cfg.ExportDir
		if len(args) == 2 {
			dir = args[1]
		}
		path, err := export.WriteQR(dir, args[0])
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the offline mirror with the spreadsheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()

		if err := storage.SyncMirror(cmd.Context(), env.backend, env.mirror, env.log); err != nil {
			return err
		}
		fmt.Println("Databases in sync.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", AppName, AppVersion)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"answer yes to confirmation prompts")

	itemsCmd.AddCommand(itemsListCmd, itemsSearchCmd, itemsAddCmd, itemsRemoveCmd)
	usersCmd.AddCommand(usersListCmd, usersSearchCmd, usersAddCmd, usersRemoveCmd)
	rootCmd.AddCommand(itemsCmd, usersCmd, exportCmd, qrCmd, syncCmd, versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// cliEnv bundles everything a subcommand needs to talk to the stores.
type cliEnv struct {
	cfg     config.Config
	log     logger.Logger
	store   *storage.Store
	backend storage.Backend
	mirror  *storage.Mirror
}

func openEnv(ctx context.Context) (*cliEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))

	backend, err := storage.NewSheetsBackend(ctx, cfg.CredentialsFile, cfg.SpreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet backend: %w", err)
	}

	mirror, err := storage.OpenMirror(cfg.MirrorDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database: %w", err)
	}

	store := storage.NewStore(backend, mirror, log)
	if err := store.Refresh(ctx); err != nil {
		mirror.Close()
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	return &cliEnv{
		cfg:     cfg,
		log:     log,
		store:   store,
		backend: backend,
		mirror:  mirror,
	}, nil
}

func (env *cliEnv) close() {
	env.mirror.Close()
}

func confirm(prompt string) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func runGUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.NewFileConsoleLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer log.Close()

	stockApp, err := NewStockApp(cfg, log)
	if err != nil {
		return err
	}
	stockApp.Run()
	return nil
}
