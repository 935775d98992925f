package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// ClaimRoundResult reports what one ClaimForRound call produced.
type ClaimRoundResult struct {
	AmountWon      math.Int
	CapReached     bool
	FullyProcessed bool // whether this round's ticket entitlement is now fully drawn
}

// ClaimForRound is the Prize Draw: given (claimant, round, the round's sealed
// RewardsState), it deterministically computes the claimant's tier matches
// and converts them to an amount, without ever persisting the full per-user
// drawing table (spec.md §4.4). It is stateless per invocation beyond the
// claim counters it mutates (UserLiquidity.tickets_used, RewardsState
// per-tier num_claimed/total_claimed, UserInfo.total_won).
//
// capRemaining bounds how many tickets this call (and any prior calls within
// the same transaction) may still draw, and is decremented by the tickets
// this call consumes; nil means no cap. ClaimRewards threads it across the
// rounds of one multi-round claim.
func (k Keeper) ClaimForRound(
	ctx sdk.Context,
	actor sdk.AccAddress,
	round uint64,
	now int64,
	capRemaining *math.Int,
) (ClaimRoundResult, error) {
	result := ClaimRoundResult{AmountWon: math.ZeroInt()}

	rs, ok := k.GetRewardsState(ctx, round)
	if !ok {
		return result, types.ErrNotFound.Wrapf("no sealed rewards for round %d", round)
	}

	ul := k.LiquidityOf(ctx, actor, round)
	liquidity := ul.TimeWeighted
	if !ul.HasTimeWeighted {
		// Carry-forward (spec.md §4.2): no event this round, so there is
		// nothing to draw against beyond the baseline; time-weighted
		// liquidity for an untouched round is zero by construction.
		liquidity = math.ZeroInt()
	}

	ticketsUsedSoFar := math.ZeroInt()
	if ul.HasTicketsUsed {
		ticketsUsedSoFar = ul.TicketsUsed
	}

	totalTickets := math.ZeroInt()
	if rs.TicketPrice.IsPositive() {
		totalTickets = liquidity.Quo(rs.TicketPrice)
	}
	tickets := totalTickets.Sub(ticketsUsedSoFar)
	if tickets.IsNegative() {
		tickets = math.ZeroInt()
	}

	fullEntitlement := tickets
	if capRemaining != nil && tickets.GT(*capRemaining) {
		tickets = *capRemaining
	}
	result.FullyProcessed = tickets.Equal(fullEntitlement)

	// Expiry shortcut (spec.md §4.4 "Expiry shortcut"): no monetary claim,
	// but the walker still advances past this round and consumes no tickets.
	if now > rs.RewardsExpirationDate {
		result.FullyProcessed = true
		return result, nil
	}

	if tickets.IsPositive() {
		seed := DeriveSeed(round0Seed(k, ctx, round), roundEntropy(k, ctx, round), claimantDiscriminator(actor.Bytes()))
		rng := newDrawRNG(seed)
		rng.skip(ticketsUsedSoFar.Uint64())

		claimed := k.drawTiers(rng, tickets, &rs)
		amount := math.ZeroInt()
		for tier := 0; tier < types.NumTiers; tier++ {
			if claimed[tier] == 0 {
				continue
			}
			amount = amount.Add(rs.TierPools[tier].RewardPerMatch.MulRaw(int64(claimed[tier])))
		}
		result.AmountWon = amount

		ul.HasTicketsUsed = true
		ul.TicketsUsed = ticketsUsedSoFar.Add(tickets)
		k.SetUserLiquidity(ctx, actor, round, ul)

		if capRemaining != nil {
			*capRemaining = (*capRemaining).Sub(tickets)
		}

		k.SetRewardsState(ctx, round, rs)

		if amount.IsPositive() {
			user := k.GetUserInfo(ctx, actor)
			user.TotalWon = user.TotalWon.Add(amount)
			k.SetUserInfo(ctx, actor, user)
			k.appendUserRewardsLog(ctx, actor, round, amount)
		}
	}

	return result, nil
}

// drawTiers implements spec.md §4.4 steps 3-5: for tier k descending from 5
// to 0, draw `tickets` samples from Uniform[0,range[k]), a sample equal to
// winning_number[k] advances that ticket to tier k; tickets for the next
// (lower) tier is the match count at the current tier; per-tier claims are
// clamped by remaining supply, with overflow discarded.
func (k Keeper) drawTiers(rng *drawRNG, tickets math.Int, rs *types.RewardsState) [types.NumTiers]uint64 {
	var claimed [types.NumTiers]uint64

	remaining := tickets
	for tier := types.NumTiers - 1; tier >= 0; tier-- {
		rng_ := rs.WinningSequence[tier].Range
		winningNumber := rs.WinningSequence[tier].WinningNumber

		matches := uint64(0)
		n := remaining
		for i := math.ZeroInt(); i.LT(n); i = i.AddRaw(1) {
			sample := rng.uniform(rng_)
			if sample.Equal(winningNumber) {
				matches++
			}
		}

		capacity := rs.TierPools[tier].NumOfRewards - rs.TierPools[tier].NumClaimed
		if matches > capacity {
			matches = capacity
		}
		claimed[tier] = matches
		rs.TierPools[tier].NumClaimed += matches
		rs.TotalClaimed = rs.TotalClaimed.Add(rs.TierPools[tier].RewardPerMatch.MulRaw(int64(matches)))

		remaining = math.NewIntFromUint64(matches)
	}

	return claimed
}

// round0Seed and roundEntropy resolve the process seed and round entropy
// used by both the end-of-round draw and per-claimant reconstruction
// (spec.md §9: both derive seeds from the same process_seed ‖ round.entropy
// material). Claims always reconstruct against the ROUND's sealed entropy,
// which is why EndRound extends round.entropy before sealing and snapshots
// it, with the seed, into RewardsState.SealedEntropy/SealedSeed; the Round
// record itself is never reset between rounds other than its start/end/index
// fields.
func round0Seed(k Keeper, ctx sdk.Context, round uint64) []byte {
	return k.roundSeedMaterial(ctx, round).seed
}

func roundEntropy(k Keeper, ctx sdk.Context, round uint64) []byte {
	return k.roundSeedMaterial(ctx, round).entropy
}

type roundSeedMaterial struct {
	seed    []byte
	entropy []byte
}

// roundSeedMaterial looks up the entropy/seed the round had at the moment
// round was sealed. Since Round is a single mutable record advanced in
// place, and entropy accumulates monotonically rather than resetting, the
// historical (seed, entropy) pair the draw used is reconstructed from a
// dedicated snapshot taken at seal time and stored alongside RewardsState.
func (k Keeper) roundSeedMaterial(ctx sdk.Context, round uint64) roundSeedMaterial {
	rs, ok := k.GetRewardsState(ctx, round)
	if !ok {
		return roundSeedMaterial{}
	}
	return roundSeedMaterial{seed: rs.SealedSeed, entropy: rs.SealedEntropy}
}

// ClaimRewards walks every round after the claimant's last-claimed round (or
// from their starting round) up to current_round-1, calling ClaimForRound against
// each, bounded overall by Config.number_of_tickets_per_transaction, and
// advances UserInfo.last_claim_rewards_round only up to the last round fully
// processed (spec.md §4.4, §5 "Fairness / back-pressure on claim"). It issues
// one bank-send for the sum across every round processed this call.
func (k Keeper) ClaimRewards(ctx sdk.Context, actor sdk.AccAddress, now int64, denom string) error {
	round := k.GetRound(ctx)
	if round.CurrentRoundIdx == 0 {
		return nil
	}

	user := k.GetUserInfo(ctx, actor)
	start := uint64(0)
	if user.HasLastClaimRound {
		start = user.LastClaimRewardsRound + 1
	} else if user.HasStartingRound {
		start = user.StartingRound
	} else {
		// Never deposited: there is no round to claim.
		return nil
	}
	if start >= round.CurrentRoundIdx {
		return nil
	}
	if user.HasLastClaimRound && user.LastClaimRewardsRound >= round.CurrentRoundIdx-1 {
		return types.ErrPreconditionViolated.Wrap("no unclaimed rounds")
	}

	cfg := k.GetConfig(ctx)
	var capRemaining *math.Int
	if !cfg.NumberOfTicketsPerTransaction.IsNil() {
		c := cfg.NumberOfTicketsPerTransaction
		capRemaining = &c
	}

	total := math.ZeroInt()
	lastFullyProcessed := start
	haveLast := false
	for r := start; r < round.CurrentRoundIdx; r++ {
		if capRemaining != nil && !capRemaining.IsPositive() {
			break
		}
		res, err := k.ClaimForRound(ctx, actor, r, now, capRemaining)
		if err != nil {
			return err
		}
		total = total.Add(res.AmountWon)
		if res.FullyProcessed {
			lastFullyProcessed = r
			haveLast = true
		} else {
			break
		}
	}

	if haveLast {
		user = k.GetUserInfo(ctx, actor)
		user.HasLastClaimRound = true
		user.LastClaimRewardsRound = lastFullyProcessed
		k.SetUserInfo(ctx, actor, user)
	}

	if total.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, actor, sdk.NewCoins(sdk.NewCoin(denom, total))); err != nil {
			return types.ErrHostInterface.Wrap(err.Error())
		}
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeClaimRewards,
		sdk.NewAttribute(types.AttributeKeyActor, actor.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, total.String()),
	))
	return nil
}

func (k Keeper) appendUserRewardsLog(ctx sdk.Context, actor sdk.AccAddress, round uint64, amount math.Int) {
	var log []types.UserRewardsLogEntry
	k.get(ctx, types.UserRewardsLogKey(actor), &log)
	log = append(log, types.UserRewardsLogEntry{Round: round, Amount: amount})
	if len(log) > types.MaxUserRewardsLogEntries {
		log = log[len(log)-types.MaxUserRewardsLogEntries:]
	}
	k.set(ctx, types.UserRewardsLogKey(actor), log)
}
