package cli

import (
	"encoding/json"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// GetTxCmd builds the prize-pool core's transaction command tree. Message
// serialization/broadcasting is explicitly out of scope (spec.md §1), so
// each subcommand only parses its arguments into the typed request structs
// of x/prizepool/types and prints the would-be request as JSON; wiring a
// transport is left to whatever host binary embeds this module.
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Prize-pool core transactions",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       cobra.NoArgs,
	}

	cmd.AddCommand(
		NewDepositCmd(),
		NewRequestWithdrawCmd(),
		NewWithdrawCmd(),
		NewClaimRewardsCmd(),
		NewSponsorCmd(),
		NewEndRoundCmd(),
		NewUnbondBatchCmd(),
	)
	cmd.PersistentFlags().String("from", "", "sender address")
	return cmd
}

func printMsg(cmd *cobra.Command, msg interface{}) error {
	bz, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(bz))
	return nil
}

func NewDepositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit [amount]",
		Short: "Deposit native denomination into the prize pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, ok := math.NewIntFromString(args[0])
			if !ok {
				return types.ErrInvalidAmount.Wrap("amount must be an integer")
			}
			return printMsg(cmd, types.MsgDeposit{Sender: clientSender(cmd), Amount: amount})
		},
	}
}

func NewRequestWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request-withdraw [amount]",
		Short: "Request withdrawal of delegated liquidity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, ok := math.NewIntFromString(args[0])
			if !ok {
				return types.ErrInvalidAmount.Wrap("amount must be an integer")
			}
			return printMsg(cmd, types.MsgRequestWithdraw{Sender: clientSender(cmd), Amount: amount})
		},
	}
}

func NewWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw [amount]",
		Short: "Withdraw matured unbonded liquidity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, ok := math.NewIntFromString(args[0])
			if !ok {
				return types.ErrInvalidAmount.Wrap("amount must be an integer")
			}
			return printMsg(cmd, types.MsgWithdraw{Sender: clientSender(cmd), Amount: amount})
		},
	}
}

func NewClaimRewardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim-rewards",
		Short: "Claim prize draw winnings across unclaimed rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMsg(cmd, types.MsgClaimRewards{Sender: clientSender(cmd)})
		},
	}
}

func NewSponsorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sponsor [amount]",
		Short: "Sponsor the prize pool without drawing tickets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, ok := math.NewIntFromString(args[0])
			if !ok {
				return types.ErrInvalidAmount.Wrap("amount must be an integer")
			}
			title, _ := cmd.Flags().GetString("title")
			body, _ := cmd.Flags().GetString("message")
			return printMsg(cmd, types.MsgSponsor{Sender: clientSender(cmd), Amount: amount, Title: title, Body: body})
		},
	}
	cmd.Flags().String("title", "", "optional sponsor message title")
	cmd.Flags().String("message", "", "optional sponsor message body")
	return cmd
}

func NewEndRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end-round",
		Short: "Trigger round end (triggerer only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMsg(cmd, types.MsgEndRound{Sender: clientSender(cmd)})
		},
	}
}

func NewUnbondBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unbond-batch",
		Short: "Trigger the pending unbonding batch (triggerer only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMsg(cmd, types.MsgUnbondBatch{Sender: clientSender(cmd)})
		},
	}
}

// clientSender resolves the --from flag, following the standard
// cosmos-sdk CLI convention for the transaction signer.
func clientSender(cmd *cobra.Command) string {
	from, _ := cmd.Flags().GetString("from")
	return from
}

func init() {
	cobra.EnableCommandSorting = false
}
