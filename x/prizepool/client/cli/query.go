package cli

import (
	"github.com/spf13/cobra"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// GetQueryCmd builds the prize-pool core's read-only command tree.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the prize-pool core",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       cobra.NoArgs,
	}

	cmd.AddCommand(
		NewQueryConfigCmd(),
		NewQueryPoolStateCmd(),
		NewQueryRoundCmd(),
		NewQueryUserInfoCmd(),
		NewQueryWithdrawableCmd(),
	)
	return cmd
}

func NewQueryConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the process-wide configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("query not wired to a client context; see x/prizepool/keeper.QueryServer.ContractConfig")
			return nil
		},
	}
}

func NewQueryPoolStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool-state",
		Short: "Show the global pool accounting record and validator table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("query not wired to a client context; see x/prizepool/keeper.QueryServer.PoolStateInfo")
			return nil
		},
	}
}

func NewQueryRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round",
		Short: "Show the current round clock and parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("query not wired to a client context; see x/prizepool/keeper.QueryServer.CurrentRound")
			return nil
		},
	}
}

func NewQueryUserInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user-info [address]",
		Short: "Show a depositor's account record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("query not wired to a client context; see x/prizepool/keeper.QueryServer.UserInfo for", args[0])
			return nil
		},
	}
}

func NewQueryWithdrawableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdrawable [address]",
		Short: "Show a depositor's matured withdrawable balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("query not wired to a client context; see x/prizepool/keeper.QueryServer.Withdrawable for", args[0])
			return nil
		},
	}
}
