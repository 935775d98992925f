package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// MsgServer wires the action surface of spec.md §6 to the keeper operations,
// enforcing the status-gating and role preconditions of spec.md §5 and §7
// before delegating to the Delegation Router, Liquidity Ledger, Round Engine,
// Prize Draw and Unbonding Scheduler.
type MsgServer struct {
	Keeper
}

// NewMsgServer returns the module's message-handling surface.
func NewMsgServer(k Keeper) MsgServer {
	return MsgServer{Keeper: k}
}

func (s MsgServer) requireStatus(cfg types.Config, max types.ContractStatus) error {
	if !cfg.Status.Allows(max) {
		return types.ErrPreconditionViolated.Wrap("operation not permitted at current contract status")
	}
	return nil
}

func (s MsgServer) requireAdmin(cfg types.Config, sender string) error {
	if !cfg.IsAdmin(sender) {
		return types.ErrUnauthorized.Wrap("caller is not an admin")
	}
	return nil
}

func (s MsgServer) requireTriggerer(cfg types.Config, sender string) error {
	if !cfg.IsTriggerer(sender) {
		return types.ErrUnauthorized.Wrap("caller is not a triggerer")
	}
	return nil
}

func (s MsgServer) requireReviewer(cfg types.Config, sender string) error {
	if !cfg.IsReviewer(sender) {
		return types.ErrUnauthorized.Wrap("caller is not a reviewer")
	}
	return nil
}

// Deposit: amount >= min_deposit; status=Normal. The amount is taken in
// Config.denom; the message carries no denom, so none is checked.
func (s MsgServer) Deposit(ctx sdk.Context, msg types.MsgDeposit) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireStatus(cfg, types.StatusNormal); err != nil {
		return err
	}
	if !cfg.MinimumDeposit.IsNil() && msg.Amount.LT(cfg.MinimumDeposit) {
		return types.ErrInvalidAmount.Wrap("amount below minimum_deposit")
	}

	actor, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return types.ErrInvalidAmount.Wrap("invalid sender address")
	}

	round := s.GetRound(ctx)
	now := ctx.BlockTime().Unix()
	if err := s.RecordDeposit(ctx, actor, msg.Amount, now, round); err != nil {
		return err
	}
	if err := s.StakeOne(ctx, msg.Amount); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeDeposit,
		sdk.NewAttribute(types.AttributeKeyActor, actor.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, msg.Amount.String()),
	))
	return nil
}

// RequestWithdraw: amount <= user.amount_delegated; status <= StopTransactions.
func (s MsgServer) RequestWithdraw(ctx sdk.Context, msg types.MsgRequestWithdraw) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireStatus(cfg, types.StatusStopTransactions); err != nil {
		return err
	}
	actor, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return types.ErrInvalidAmount.Wrap("invalid sender address")
	}
	return s.Keeper.RequestWithdraw(ctx, actor, msg.Amount, ctx.BlockTime().Unix(), types.SourceUser)
}

// Withdraw: amount <= matured withdrawable; status <= StopTransactions.
func (s MsgServer) Withdraw(ctx sdk.Context, msg types.MsgWithdraw) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireStatus(cfg, types.StatusStopTransactions); err != nil {
		return err
	}
	actor, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return types.ErrInvalidAmount.Wrap("invalid sender address")
	}
	return s.Keeper.Withdraw(ctx, actor, msg.Amount, ctx.BlockTime().Unix(), cfg.Denom)
}

// ClaimRewards: last_claim_rewards_round < current-1; status <= StopTransactions.
func (s MsgServer) ClaimRewards(ctx sdk.Context, msg types.MsgClaimRewards) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireStatus(cfg, types.StatusStopTransactions); err != nil {
		return err
	}
	actor, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return types.ErrInvalidAmount.Wrap("invalid sender address")
	}
	return s.Keeper.ClaimRewards(ctx, actor, ctx.BlockTime().Unix(), cfg.Denom)
}

// Sponsor: status=Normal. The amount is taken in Config.denom; the message
// carries no denom, so none is checked.
func (s MsgServer) Sponsor(ctx sdk.Context, msg types.MsgSponsor) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireStatus(cfg, types.StatusNormal); err != nil {
		return err
	}
	actor, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return types.ErrInvalidAmount.Wrap("invalid sender address")
	}
	return s.Keeper.Sponsor(ctx, actor, msg.Amount, ctx.BlockTime().Unix(), msg.Title, msg.Body)
}

// SponsorRequestWithdraw: amount <= amount_sponsored.
func (s MsgServer) SponsorRequestWithdraw(ctx sdk.Context, msg types.MsgSponsorRequestWithdraw) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireStatus(cfg, types.StatusStopTransactions); err != nil {
		return err
	}
	actor, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return types.ErrInvalidAmount.Wrap("invalid sender address")
	}
	return s.Keeper.SponsorRequestWithdraw(ctx, actor, msg.Amount, ctx.BlockTime().Unix())
}

// SponsorWithdraw: amount <= matured.
func (s MsgServer) SponsorWithdraw(ctx sdk.Context, msg types.MsgSponsorWithdraw) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireStatus(cfg, types.StatusStopTransactions); err != nil {
		return err
	}
	actor, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return types.ErrInvalidAmount.Wrap("invalid sender address")
	}
	return s.Keeper.SponsorWithdraw(ctx, actor, msg.Amount, ctx.BlockTime().Unix(), cfg.Denom)
}

// EndRound: now >= round.end_time; triggerer; status <= StopTransactions.
func (s MsgServer) EndRound(ctx sdk.Context, msg types.MsgEndRound) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireTriggerer(cfg, msg.Sender); err != nil {
		return err
	}
	if err := s.requireStatus(cfg, types.StatusStopTransactions); err != nil {
		return err
	}
	return s.Keeper.EndRound(ctx, ctx.BlockTime().Unix())
}

// UnbondBatch: now >= next_batch_time; triggerer; status <= StopTransactions.
func (s MsgServer) UnbondBatch(ctx sdk.Context, msg types.MsgUnbondBatch) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireTriggerer(cfg, msg.Sender); err != nil {
		return err
	}
	if err := s.requireStatus(cfg, types.StatusStopTransactions); err != nil {
		return err
	}
	return s.Keeper.TriggerBatch(ctx, ctx.BlockTime().Unix())
}

// UpdateValidatorSet: admin.
func (s MsgServer) UpdateValidatorSet(ctx sdk.Context, msg types.MsgUpdateValidatorSet) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireAdmin(cfg, msg.Sender); err != nil {
		return err
	}
	return s.Keeper.ReplaceValidatorSet(ctx, msg.Validators)
}

// RebalanceValidatorSet: admin.
func (s MsgServer) RebalanceValidatorSet(ctx sdk.Context, msg types.MsgRebalanceValidatorSet) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireAdmin(cfg, msg.Sender); err != nil {
		return err
	}
	return s.Keeper.Rebalance(ctx)
}

// RequestReservesWithdraw: admin.
func (s MsgServer) RequestReservesWithdraw(ctx sdk.Context, msg types.MsgRequestReservesWithdraw) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireAdmin(cfg, msg.Sender); err != nil {
		return err
	}
	return s.Keeper.RequestReservesWithdraw(ctx, msg.Amount)
}

// ReservesWithdraw: admin.
func (s MsgServer) ReservesWithdraw(ctx sdk.Context, msg types.MsgReservesWithdraw) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireAdmin(cfg, msg.Sender); err != nil {
		return err
	}
	actor, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return types.ErrInvalidAmount.Wrap("invalid sender address")
	}
	return s.Keeper.ReservesWithdraw(ctx, actor, msg.Amount, ctx.BlockTime().Unix(), cfg.Denom)
}

// SetContractStatus: admin.
func (s MsgServer) SetContractStatus(ctx sdk.Context, msg types.MsgSetContractStatus) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireAdmin(cfg, msg.Sender); err != nil {
		return err
	}
	cfg.Status = msg.Status
	s.SetConfig(ctx, cfg)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeStatusChange,
		sdk.NewAttribute(types.AttributeKeyStatus, roundAttr(uint64(msg.Status))),
	))
	return nil
}

// ReviewSponsorMessage: reviewer.
func (s MsgServer) ReviewSponsorMessage(ctx sdk.Context, msg types.MsgReviewSponsorMessage) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireReviewer(cfg, msg.Sender); err != nil {
		return err
	}
	return s.Keeper.ReviewSponsorMessage(ctx, msg.Index, msg.Approve)
}

// UpdateConfig: admin. Only non-nil/non-nil-Int fields are applied.
func (s MsgServer) UpdateConfig(ctx sdk.Context, msg types.MsgUpdateConfig) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireAdmin(cfg, msg.Sender); err != nil {
		return err
	}
	if msg.UnbondingBatchDuration != nil {
		cfg.UnbondingBatchDuration = *msg.UnbondingBatchDuration
	}
	if msg.UnbondingDuration != nil {
		cfg.UnbondingDuration = *msg.UnbondingDuration
	}
	if !msg.MinimumDeposit.IsNil() {
		cfg.MinimumDeposit = msg.MinimumDeposit
	}
	if !msg.NumberOfTicketsPerTransaction.IsNil() {
		cfg.NumberOfTicketsPerTransaction = msg.NumberOfTicketsPerTransaction
	}
	s.SetConfig(ctx, cfg)
	return nil
}

// UpdateRound: admin. Only non-nil fields are applied; callers are
// responsible for the I5 share-partition invariant on whichever fraction
// fields they touch.
func (s MsgServer) UpdateRound(ctx sdk.Context, msg types.MsgUpdateRound) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireAdmin(cfg, msg.Sender); err != nil {
		return err
	}
	round := s.GetRound(ctx)
	if !msg.TicketPrice.IsNil() {
		round.TicketPrice = msg.TicketPrice
	}
	if msg.RewardsDistribution != nil {
		round.RewardsDistribution = *msg.RewardsDistribution
	}
	if msg.RewardsExpiryDuration != nil {
		round.RewardsExpiryDuration = *msg.RewardsExpiryDuration
	}
	if msg.TriggererSharePercentage != nil {
		round.TriggererSharePercentage = *msg.TriggererSharePercentage
	}
	if msg.AdminShare != nil {
		round.AdminShare = *msg.AdminShare
	}
	if msg.UnclaimedDistribution != nil {
		round.UnclaimedDistribution = *msg.UnclaimedDistribution
	}
	s.SetRound(ctx, round)
	return nil
}

// AddRole: admin.
func (s MsgServer) AddRole(ctx sdk.Context, msg types.MsgAddRole) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireAdmin(cfg, msg.Sender); err != nil {
		return err
	}
	switch msg.Role {
	case "admin":
		cfg.Admins = appendIfAbsent(cfg.Admins, msg.Addr)
	case "triggerer":
		cfg.Triggerers = appendIfAbsent(cfg.Triggerers, msg.Addr)
	case "reviewer":
		cfg.Reviewers = appendIfAbsent(cfg.Reviewers, msg.Addr)
	default:
		return types.ErrInvalidAmount.Wrapf("unknown role %q", msg.Role)
	}
	s.SetConfig(ctx, cfg)
	return nil
}

// RemoveRole: admin.
func (s MsgServer) RemoveRole(ctx sdk.Context, msg types.MsgRemoveRole) error {
	cfg := s.GetConfig(ctx)
	if err := s.requireAdmin(cfg, msg.Sender); err != nil {
		return err
	}
	switch msg.Role {
	case "admin":
		cfg.Admins = removeAddr(cfg.Admins, msg.Addr)
	case "triggerer":
		cfg.Triggerers = removeAddr(cfg.Triggerers, msg.Addr)
	case "reviewer":
		cfg.Reviewers = removeAddr(cfg.Reviewers, msg.Addr)
	default:
		return types.ErrInvalidAmount.Wrapf("unknown role %q", msg.Role)
	}
	s.SetConfig(ctx, cfg)
	return nil
}

func appendIfAbsent(list []string, addr string) []string {
	for _, a := range list {
		if a == addr {
			return list
		}
	}
	return append(list, addr)
}

func removeAddr(list []string, addr string) []string {
	out := list[:0:0]
	for _, a := range list {
		if a != addr {
			out = append(out, a)
		}
	}
	return out
}
